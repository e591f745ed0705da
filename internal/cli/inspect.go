package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/convert"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the nodes and property values of a .vfx or XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInspect(ctx context.Context, path string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	codec, err := c.loadCodec(ctx, cfg)
	if err != nil {
		return err
	}
	doc, err := convert.ReadFile(codec, path)
	if err != nil {
		return err
	}
	if len(doc.Nodes) == 0 {
		printInfo("%s has no nodes", path)
		return nil
	}

	m := NewInspectModel(doc, func(v vfx.Value) string {
		return codec.Describe(doc.Version, v)
	})
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// InspectModel - Interactive node browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a document. The list
// view shows one row per node; enter opens the property view of the node
// under the cursor.
type InspectModel struct {
	Doc      *vfx.Document
	Describe func(vfx.Value) string
	Cursor   int
	Offset   int
	Height   int
	Detail   bool

	inputs  [][]int
	outputs [][]int
}

// NewInspectModel creates a model over doc. A nil describe uses
// [vfx.Value.String].
func NewInspectModel(doc *vfx.Document, describe func(vfx.Value) string) InspectModel {
	if describe == nil {
		describe = vfx.Value.String
	}
	m := InspectModel{
		Doc:      doc,
		Describe: describe,
		Height:   15,
		inputs:   make([][]int, len(doc.Nodes)),
		outputs:  make([][]int, len(doc.Nodes)),
	}
	for _, e := range doc.Edges {
		s, t := int(e.Source), int(e.Target)
		if s < len(doc.Nodes) && t < len(doc.Nodes) {
			m.outputs[s] = append(m.outputs[s], t)
			m.inputs[t] = append(m.inputs[t], s)
		}
	}
	return m
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if !m.Detail && msg.String() == "esc" {
				return m, tea.Quit
			}
			m.Detail = false
		case "enter", "right", "l":
			m.Detail = true
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Doc.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m InspectModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Effect graph (%s)", m.Doc.Version)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ properties  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Doc.Nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Doc.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			"#" + strconv.Itoa(i),
			n.Def.Name(),
			strconv.Itoa(n.Def.NumProperties()),
			joinIndices(m.inputs[i]),
			joinIndices(m.outputs[i]),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "Props", "Inputs", "Outputs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 4 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d edges · %d variations",
		m.Cursor+1, len(m.Doc.Nodes), len(m.Doc.Edges), len(m.Doc.Variations))))

	return b.String()
}

func (m InspectModel) detailView() string {
	var b strings.Builder
	n := m.Doc.Nodes[m.Cursor]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("#%d %s", m.Cursor, n.Def.Name())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("← back  ↑/↓ previous/next node  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, n.Def.NumProperties())
	for i, p := range n.Def.Properties() {
		vals := make([]string, len(n.Values[i]))
		for j, v := range n.Values[i] {
			vals[j] = m.Describe(v)
		}
		rows = append(rows, []string{p.Name, p.Type.String(), strings.Join(vals, ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Type", "Values").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return listHeaderStyle
			case col == 1:
				return listDimStyle
			case col == 2:
				return StyleValue
			}
			return StyleHighlight
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("  inputs: " + joinIndices(m.inputs[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  outputs: " + joinIndices(m.outputs[m.Cursor])))
	if vars := m.variationsOf(m.Cursor); len(vars) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  variations: " + strings.Join(vars, ", ")))
	}

	return b.String()
}

// variationsOf lists "name → #new" for each variation replacing node i.
func (m InspectModel) variationsOf(i int) []string {
	var out []string
	for _, v := range m.Doc.Variations {
		for _, p := range v.Pairs {
			if int(p.Target) == i {
				name := m.Describe(vfx.UInt32Value(v.Name))
				out = append(out, fmt.Sprintf("%s → #%d", name, p.New))
			}
		}
	}
	return out
}

func joinIndices(idx []int) string {
	if len(idx) == 0 {
		return "—"
	}
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = "#" + strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
