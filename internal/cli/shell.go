package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/mesh"
	"github.com/matzehuels/flightmesh/pkg/points"
	"github.com/matzehuels/flightmesh/pkg/render/table"
)

const shellHelp = `add LAT LNG        add a point (the first one is the base)
move ID LAT LNG    move a point
rm ID              remove a point by id
rmi INDEX          remove a point by position
dist ID ID         distance between two points
clear              remove every point
save FILE          export points and matrix as CSV
load FILE          replace points with a CSV export
help               show this help
quit               leave the shell`

var (
	shellStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	shellErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	shellHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// shellCommand creates the interactive shell command.
func (c *CLI) shellCommand() *cobra.Command {
	var load string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit a point set interactively",
		Long: `Edit a point set interactively.

The shell shows the coordinates and distance matrix tables and redraws them
after every accepted change. Points that would leave the flight range are
rejected and stay where they were.

` + shellHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context(), load)
		},
	}

	cmd.Flags().StringVar(&load, "load", "", "CSV export to start from")
	return cmd
}

func (c *CLI) runShell(ctx context.Context, load string) error {
	m := c.newShell(ctx)
	if load != "" {
		if _, err := m.exec("load " + load); err != nil {
			return err
		}
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// newShell builds the shell model on a fresh engine. The alt screen owns the
// terminal while the shell runs, so the logger is silenced.
func (c *CLI) newShell(ctx context.Context) shellModel {
	c.Logger.SetOutput(io.Discard)
	view := table.NewView()
	return newShellModel(ctx, c.newEngine(view), view)
}

// =============================================================================
// shellModel - bubbletea model for the interactive shell
// =============================================================================

type shellModel struct {
	ctx    context.Context
	engine *mesh.Engine
	view   *table.View
	input  textinput.Model

	status    string
	statusErr bool
	showHelp  bool

	history      []string
	historyIndex int
}

func newShellModel(ctx context.Context, engine *mesh.Engine, view *table.View) shellModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "add 50.0350 22.0010"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return shellModel{
		ctx:          ctx,
		engine:       engine,
		view:         view,
		input:        ti,
		historyIndex: -1,
	}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.historyIndex = -1
			if line == "" {
				return m, nil
			}
			m.history = append(m.history, line)

			status, err := m.exec(line)
			if err == errQuit {
				return m, tea.Quit
			}
			m.showHelp = status == shellHelp
			m.status, m.statusErr = status, err != nil
			if err != nil {
				m.status = errors.UserMessage(err)
			}
			return m, nil

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.history[m.historyIndex])
			m.input.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.input.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue("")
			}
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("flightmesh"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  max range %s", formatKm(m.engine.MaxRangeKm()))))
	b.WriteString("\n\n")
	b.WriteString(m.view.String())
	b.WriteString("\n")

	switch {
	case m.showHelp:
		b.WriteString(shellHelpStyle.Render(shellHelp))
		b.WriteString("\n\n")
	case m.status != "" && m.statusErr:
		b.WriteString(shellErrorStyle.Render(iconError + " " + m.status))
		b.WriteString("\n\n")
	case m.status != "":
		b.WriteString(shellStatusStyle.Render(iconSuccess + " " + m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(shellHelpStyle.Render("help for commands · ↑/↓ history · esc quit"))
	return b.String()
}

// =============================================================================
// Command execution
// =============================================================================

// errQuit is returned by exec for quit and exit.
var errQuit = fmt.Errorf("quit")

// exec runs one shell line against the engine and returns a status message.
func (m shellModel) exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "add":
		if err := wantArgs(name, args, 2); err != nil {
			return "", err
		}
		coords, err := parseCoordinates(args)
		if err != nil {
			return "", err
		}
		p, err := m.engine.Add(m.ctx, coords[0].Lat, coords[0].Lng)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("added %s (id %d)", p.Name, p.ID), nil

	case "move":
		if err := wantArgs(name, args, 3); err != nil {
			return "", err
		}
		id, err := parseInt("id", args[0])
		if err != nil {
			return "", err
		}
		coords, err := parseCoordinates(args[1:])
		if err != nil {
			return "", err
		}
		p, err := m.engine.Move(m.ctx, id, coords[0].Lat, coords[0].Lng)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("moved %s to %.6f, %.6f", p.Name, p.Lat, p.Lng), nil

	case "rm", "rmi":
		if err := wantArgs(name, args, 1); err != nil {
			return "", err
		}
		n, err := parseInt("argument", args[0])
		if err != nil {
			return "", err
		}
		remove := m.engine.Remove
		if name == "rmi" {
			remove = m.engine.RemoveAt
		}
		p, err := remove(m.ctx, n)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %s (id %d)", p.Name, p.ID), nil

	case "dist":
		if err := wantArgs(name, args, 2); err != nil {
			return "", err
		}
		return m.distance(args[0], args[1])

	case "clear":
		m.engine.Clear(m.ctx)
		return "cleared", nil

	case "save":
		if err := wantArgs(name, args, 1); err != nil {
			return "", err
		}
		if err := errors.ValidatePath(args[0]); err != nil {
			return "", err
		}
		data, err := m.engine.Export(m.ctx)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %d points to %s", len(m.engine.Points()), args[0]), nil

	case "load":
		if err := wantArgs(name, args, 1); err != nil {
			return "", err
		}
		data, err := readInput(args[0])
		if err != nil {
			return "", err
		}
		if err := m.engine.Import(m.ctx, data); err != nil {
			return "", err
		}
		return fmt.Sprintf("loaded %d points from %s", len(m.engine.Points()), args[0]), nil

	case "help", "?":
		return shellHelp, nil

	case "quit", "exit", "q":
		return "", errQuit

	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown command %q (try help)", name)
	}
}

// distance looks up the matrix entry between two point ids.
func (m shellModel) distance(a, b string) (string, error) {
	idA, err := parseInt("id", a)
	if err != nil {
		return "", err
	}
	idB, err := parseInt("id", b)
	if err != nil {
		return "", err
	}

	pts := m.engine.Points()
	i, j := indexByID(pts, idA), indexByID(pts, idB)
	if i < 0 {
		return "", errors.New(errors.ErrCodeNotFound, "point %d not found", idA)
	}
	if j < 0 {
		return "", errors.New(errors.ErrCodeNotFound, "point %d not found", idB)
	}
	matrix, err := m.engine.Matrix()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s to %s: %s", pts[i].Name, pts[j].Name, formatKm(matrix.At(i, j))), nil
}

func indexByID(pts []points.Point, id int) int {
	return slices.IndexFunc(pts, func(p points.Point) bool { return p.ID == id })
}

func wantArgs(name string, args []string, n int) error {
	if len(args) != n {
		return errors.New(errors.ErrCodeInvalidInput, "%s takes %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func parseInt(what, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", what, s)
	}
	return v, nil
}
