package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/geom"
	pkgio "github.com/matzehuels/bspgen/pkg/io"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	flags := newConfigFlags()
	var (
		plain  bool
		export string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the leaves of a generated tree",
		Long: `Browse generates a dungeon and lists its leaf regions with their size,
center, room and sibling. Press s to jump to the selected leaf's sibling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			opts.Logger = loggerFromContext(cmd.Context())
			d, err := dungeon.Generate(opts)
			if err != nil {
				return err
			}

			if export != "" {
				if err := pkgio.ExportJSON(d, export); err != nil {
					return err
				}
				opts.Logger.Info("Exported tree", "path", export)
			}

			m := NewLeafListModel(d)
			if plain {
				m.Height = len(m.Leaves)
				fmt.Fprintln(c.Out, m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd.Flags(), false)
	cmd.Flags().BoolVar(&plain, "plain", false, "print the table once instead of starting the browser")
	cmd.Flags().StringVar(&export, "export", "", "also write the browsed tree as JSON")

	return cmd
}

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// LeafListModel - Interactive leaf browser
// =============================================================================

// LeafListModel is the bubbletea model for browsing leaves.
type LeafListModel struct {
	Seed   int64
	Leaves []*bsp.Node[dungeon.Area]
	Cursor int
	Height int
	Offset int
	Status string
}

// NewLeafListModel lists the leaves of d in pre-order.
func NewLeafListModel(d *dungeon.Dungeon) LeafListModel {
	return LeafListModel{
		Seed:   d.Seed,
		Leaves: d.Tree.Leaves(),
		Height: 15,
	}
}

func (m LeafListModel) Init() tea.Cmd {
	return nil
}

func (m LeafListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "home", "g":
			m = m.moveTo(0)
		case "end", "G":
			m = m.moveTo(len(m.Leaves) - 1)
		case "s":
			m = m.jumpToSibling()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m LeafListModel) moveTo(i int) LeafListModel {
	if len(m.Leaves) == 0 {
		return m
	}
	m.Cursor = min(max(i, 0), len(m.Leaves)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m LeafListModel) jumpToSibling() LeafListModel {
	if len(m.Leaves) == 0 {
		return m
	}
	sib, err := m.Leaves[m.Cursor].Sibling()
	if err != nil {
		m.Status = err.Error()
		return m
	}
	for i, leaf := range m.Leaves {
		if leaf.ID == sib.ID {
			return m.moveTo(i)
		}
	}
	m.Status = fmt.Sprintf("sibling %s is an internal node", shortID(sib))
	return m
}

func (m LeafListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Leaves (seed %d)", m.Seed)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sibling  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Leaves))

	var sibling *bsp.Node[dungeon.Area]
	if len(m.Leaves) > 0 {
		sibling, _ = m.Leaves[m.Cursor].Sibling()
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		leaf := m.Leaves[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, leafRow(cursor, leaf))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Leaf", "Depth", "Region", "Size", "Area", "Center", "Room", "Sibling").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Leaves) {
				return lipgloss.NewStyle()
			}
			leaf := m.Leaves[idx]
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case sibling != nil && leaf.ID == sibling.ID:
				return lipgloss.NewStyle().Foreground(colorYellow)
			case leaf.Data.Room == nil:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Leaves)), len(m.Leaves))))
	if m.Status != "" {
		b.WriteString("  " + StyleWarning.Render(m.Status))
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func leafRow(cursor string, leaf *bsp.Node[dungeon.Area]) []string {
	r := leaf.Data.Region
	c := geom.Center(r)

	room := "—"
	if rm := leaf.Data.Room; rm != nil {
		room = fmt.Sprintf("%gx%g", rm.Width, rm.Height)
	}
	sib := "—"
	if s, err := leaf.Sibling(); err == nil {
		sib = shortID(s)
	}

	return []string{
		cursor,
		shortID(leaf),
		fmt.Sprintf("%d", leaf.Depth()),
		fmt.Sprintf("%g,%g → %g,%g", r.X.Min, r.Y.Min, r.X.Max, r.Y.Max),
		fmt.Sprintf("%gx%g", geom.Width(r), geom.Height(r)),
		fmt.Sprintf("%g", geom.Area(r)),
		fmt.Sprintf("%g,%g", c.X, c.Y),
		room,
		sib,
	}
}

func shortID[T any](n *bsp.Node[T]) string {
	return n.ID.String()[:8]
}
