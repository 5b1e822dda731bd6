package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/arraybridge/internal/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cellStyle = lipgloss.NewStyle().PaddingRight(2)
)

type sessionInfo struct {
	device  string
	unified bool
}

func (s sessionInfo) String() string {
	mode := "non-unified"
	if s.unified {
		mode = "unified"
	}
	return fmt.Sprintf("device %s (%s)", s.device, mode)
}

func shape(r scenario.Result) string {
	if !r.Converted {
		return "-"
	}
	return fmt.Sprintf("%dx%d", r.Tuples, r.Components)
}

func status(r scenario.Result) string {
	switch {
	case r.Verified:
		return "ok"
	case r.Error != "":
		return r.Error
	default:
		return "unverified"
	}
}

// renderPlain writes a tab-aligned table for pipes and files.
func renderPlain(w io.Writer, info sessionInfo, results []scenario.Result) {
	fmt.Fprintln(w, info)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tLAYOUT\tSHAPE\tSTATUS")
	for _, r := range results {
		layout := r.Layout
		if layout == "" {
			layout = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Kind, layout, shape(r), status(r))
	}
	tw.Flush()
}

// renderStyled writes the summary with terminal colors.
func renderStyled(w io.Writer, info sessionInfo, results []scenario.Result) {
	widths := [4]int{4, 4, 6, 5}
	for _, r := range results {
		widths[0] = max(widths[0], len(r.Name))
		widths[1] = max(widths[1], len(r.Kind))
		widths[2] = max(widths[2], len(r.Layout))
		widths[3] = max(widths[3], len(shape(r)))
	}
	cell := func(i int, s string, st lipgloss.Style) string {
		return cellStyle.Width(widths[i] + 2).Render(st.Render(s))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("arraybridge"))
	b.WriteString(" ")
	b.WriteString(info.String())
	b.WriteString("\n\n")
	for _, r := range results {
		st := errorStyle
		if r.Verified {
			st = okStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			cell(0, r.Name, nameStyle),
			cell(1, r.Kind, kindStyle),
			cell(2, r.Layout, lipgloss.NewStyle()),
			cell(3, shape(r), lipgloss.NewStyle()),
			st.Render(status(r)),
		))
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}
