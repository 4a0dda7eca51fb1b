package table

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flightmesh/pkg/graph"
	"github.com/matzehuels/flightmesh/pkg/points"
)

var (
	dimStyle  = lipgloss.NewStyle().Foreground(colorBorder)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// View keeps the latest state pushed by the engine and renders it as the
// coordinates table followed by the matrix table. It satisfies the engine's
// renderer contract.
type View struct {
	mu       sync.Mutex
	pts      []points.Point
	matrix   graph.Matrix
	hasEdges bool
	notice   string
}

// NewView returns an empty view.
func NewView() *View {
	return &View{}
}

// OnPointsChanged stores the new point list.
func (v *View) OnPointsChanged(pts []points.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pts = pts
	v.notice = ""
}

// OnMatrixChanged stores the new matrix.
func (v *View) OnMatrixChanged(m graph.Matrix, pts []points.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.matrix = m
	v.pts = pts
	v.hasEdges = true
}

// OnMatrixCleared drops the matrix table.
func (v *View) OnMatrixCleared() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.matrix = graph.Matrix{}
	v.hasEdges = false
}

// OnPointRejected records a notice naming the point's restored position.
func (v *View) OnPointRejected(id int, lastLat, lastLng float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = fmt.Sprintf("point %d out of range, kept at %.6f, %.6f", id, lastLat, lastLng)
}

// String renders the current state.
func (v *View) String() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var b strings.Builder
	if len(v.pts) == 0 {
		b.WriteString(dimStyle.Render("no points; add a base to start"))
		b.WriteString("\n")
	} else {
		b.WriteString(Coordinates(v.pts))
		b.WriteString("\n")
	}
	if v.hasEdges {
		b.WriteString(Matrix(v.matrix, v.pts))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(warnStyle.Render(v.notice))
		b.WriteString("\n")
	}
	return b.String()
}
