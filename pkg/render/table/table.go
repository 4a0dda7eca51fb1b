// Package table renders points and distance matrices as terminal tables.
package table

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flightmesh/pkg/graph"
	"github.com/matzehuels/flightmesh/pkg/points"
)

var (
	colorBorder = lipgloss.Color("240")
	colorHeader = lipgloss.Color("245")
	colorBase   = lipgloss.Color("36")

	headerStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// markerColors maps palette names to terminal colors.
var markerColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("33"),
	"gold":   lipgloss.Color("220"),
	"red":    lipgloss.Color("167"),
	"green":  lipgloss.Color("35"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("226"),
	"violet": lipgloss.Color("135"),
	"grey":   lipgloss.Color("245"),
	"black":  lipgloss.Color("240"),
}

// Coordinates renders one row per point with six-decimal coordinates.
func Coordinates(pts []points.Point) string {
	rows := make([][]string, len(pts))
	for i, p := range pts {
		rows[i] = []string{
			strconv.Itoa(p.ID),
			p.Name,
			strconv.FormatFloat(p.Lat, 'f', 6, 64),
			strconv.FormatFloat(p.Lng, 'f', 6, 64),
			p.Color,
		}
	}

	t := newTable().
		Headers("ID", "Point", "Latitude", "Longitude", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0 || col == 2 || col == 3:
				return numberStyle
			case col == 1 && row == 0:
				return cellStyle.Foreground(colorBase).Bold(true)
			case col == 4:
				if c, ok := markerColors[pts[row].Color]; ok {
					return cellStyle.Foreground(c)
				}
			}
			return cellStyle
		})
	return t.Render()
}

// Matrix renders m with point names on both axes and two-decimal distances
// in kilometers. pts must be the points m was computed from.
func Matrix(m graph.Matrix, pts []points.Point) string {
	headers := make([]string, m.Len()+1)
	headers[0] = "km"
	for i := 0; i < m.Len(); i++ {
		headers[i+1] = pts[i].Name
	}

	rows := make([][]string, m.Len())
	for i := range rows {
		row := make([]string, m.Len()+1)
		row[0] = pts[i].Name
		for j := 0; j < m.Len(); j++ {
			row[j+1] = strconv.FormatFloat(m.At(i, j), 'f', 2, 64)
		}
		rows[i] = row
	}

	t := newTable().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1 || col == 0:
				return headerStyle.Padding(0, 1)
			case row == col-1:
				return numberStyle.Foreground(colorBorder)
			}
			return numberStyle
		})
	return t.Render()
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder))
}
