package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/genai-bias/biasplot/pkg/dataset"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	tableNumberStyle = lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1).Align(lipgloss.Right)
	tableDimStyle    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)

// renderTable draws rows under headers. Columns listed in numeric are
// right-aligned; a "-" cell is dimmed.
func renderTable(headers []string, rows [][]string, numeric ...int) string {
	isNumeric := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		isNumeric[c] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case row >= 0 && row < len(rows) && col < len(rows[row]) && rows[row][col] == "-":
				return tableDimStyle
			case isNumeric[col]:
				return tableNumberStyle
			}
			return tableCellStyle
		})
	return t.String()
}

// formatSigned formats a difference with an explicit sign ("+4.2", "-0.8").
func formatSigned(v dataset.Value, decimals int) string {
	if !v.Valid {
		return "-"
	}
	s := fmt.Sprintf("%+.*f", decimals, v.V)
	if strings.Trim(s, "+-0.") == "" {
		return fmt.Sprintf("%.*f", decimals, 0.0)
	}
	return s
}
