// Package cheatsheet renders the leader menu as a terminal table.
package cheatsheet

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/leader"
)

// Style definitions for colored output
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // Bright blue
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Padding(0, 1) // Cyan
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Render returns the leader's entry chord followed by one row per visible
// action. Immediate categories get a single row.
func Render(c leader.Config, color bool) string {
	var rows [][]string
	for _, cat := range c.Categories {
		ck := label(cat.Key)
		if len(cat.Actions) == 0 {
			rows = append(rows, []string{ck, cat.Name, "(runs immediately)"})
			continue
		}
		for _, a := range cat.Actions {
			if a.Hidden {
				continue
			}
			rows = append(rows, []string{ck + " " + a.Label(), cat.Name, a.Description})
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Keys", "Category", "Action").
		Rows(rows...)
	if color {
		t.BorderStyle(borderStyle).StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			case col == 1:
				return categoryStyle
			}
			return cellStyle
		})
	} else {
		t.StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	}

	title := "Leader " + chord(c.Keys)
	if c.Timeout > 0 {
		title += " (times out)"
	}
	if color {
		title = titleStyle.Render(title)
	}
	return title + "\n" + t.String() + "\n"
}

func label(key string) string {
	code, err := karabiner.KeyCode(key)
	if err != nil {
		return strings.ToUpper(key)
	}
	return karabiner.Label(code)
}

func chord(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, label(k))
	}
	return strings.Join(parts, "+")
}
