package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/arraybridge/internal/scenario"
)

// maxRows bounds the tuples rendered in the value pane.
const maxRows = 500

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Browse converted arrays in a terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return fmt.Errorf("inspect needs an interactive terminal; use run instead")
			}
			ctx := cmd.Context()
			// Logs would draw over the UI; failures are shown per array instead.
			s, err := a.open(ctx, zap.NewNop())
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			results := s.builder.Run(s.conv, a.specs())
			defer func() {
				for i := range results {
					results[i].Release()
				}
			}()

			m := newInspectModel(sessionInfo{device: s.dev.Name(), unified: s.unified}, results)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type inspectModel struct {
	info    sessionInfo
	results []scenario.Result
	table   table.Model
	values  viewport.Model
	detail  bool
}

func newInspectModel(info sessionInfo, results []scenario.Result) *inspectModel {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		layout := r.Layout
		if layout == "" {
			layout = "-"
		}
		rows[i] = table.Row{r.Name, r.Kind, layout, shape(r), status(r)}
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 16},
			{Title: "Kind", Width: 6},
			{Title: "Layout", Width: 8},
			{Title: "Shape", Width: 10},
			{Title: "Status", Width: 30},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)
	st := table.DefaultStyles()
	st.Selected = selectedStyle
	t.SetStyles(st)

	return &inspectModel{
		info:    info,
		results: results,
		table:   t,
		values:  viewport.New(80, 20),
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.values.Width = msg.Width
		m.values.Height = max(msg.Height-6, 3)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if !m.detail && len(m.results) > 0 {
				m.detail = true
				m.values.SetContent(valuesContent(m.results[m.table.Cursor()]))
				m.values.GotoTop()
				return m, nil
			}

		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.detail {
		m.values, cmd = m.values.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m *inspectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("arraybridge"))
	b.WriteString(" ")
	b.WriteString(m.info.String())
	b.WriteString("\n\n")

	if m.detail {
		r := m.results[m.table.Cursor()]
		b.WriteString(fmt.Sprintf("%s %s %s\n\n", nameStyle.Render(r.Name), kindStyle.Render(r.Kind), r.Layout))
		b.WriteString(m.values.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter values • q quit"))
	return b.String()
}

// valuesContent renders the leading tuples of a result.
func valuesContent(r scenario.Result) string {
	if r.Output == nil {
		return errorStyle.Render("Error: " + status(r))
	}
	out := r.Output
	var b strings.Builder
	if r.Points != nil {
		b.WriteString(fmt.Sprintf("%d points\n", r.Points.Len()))
	}
	n := min(out.Len(), maxRows)
	for t := range n {
		b.WriteString(fmt.Sprintf("%6d:", t))
		for c := range out.NumComponents() {
			b.WriteString(" ")
			b.WriteString(strconv.FormatFloat(out.Float64(t, c), 'g', -1, 64))
		}
		b.WriteString("\n")
	}
	if out.Len() > n {
		b.WriteString(helpStyle.Render(fmt.Sprintf("... %d more tuples", out.Len()-n)))
		b.WriteString("\n")
	}
	return b.String()
}
