package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

func chips(n int) string {
	return humanize.Comma(int64(n))
}

// renderTable draws a bordered table. Columns after the first are right aligned.
func renderTable(profile termenv.Profile, headers []string, rows [][]string) string {
	re := lipgloss.NewRenderer(io.Discard)
	re.SetColorProfile(profile)

	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = header
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
