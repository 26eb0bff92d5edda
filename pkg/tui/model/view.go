package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	keptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	droppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// LevelStyle returns the style used to render a level.
func LevelStyle(l core.Level) lipgloss.Style {
	switch {
	case l >= core.LevelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case l == core.LevelWarn:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case l == core.LevelInfo:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	default:
		return dimStyle
	}
}

// DecisionStyle returns the style used to render a decision.
func DecisionStyle(d filter.Decision) lipgloss.Style {
	if d == filter.Keep {
		return keptStyle
	}
	return droppedStyle
}

// View renders the TUI.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	formView := titleStyle.Render(" Filter ") + "\n\n" + a.form.View()
	formPane := paneStyle.Width(a.width - 4).Render(formView)

	statusBarH := 2
	listH := max(a.height-lipgloss.Height(formPane)-statusBarH-2, 3)
	list := a.renderRows(a.width-4, listH)
	listPane := paneStyle.Width(a.width - 4).Height(listH).Render(list)

	return lipgloss.JoinVertical(lipgloss.Left, formPane, listPane, a.renderStatusBar())
}

// rowPrefixW is the width of everything on a row before the message.
const rowPrefixW = 2 + 12 + 1 + 7 + 1 + 16 + 1

func (a App) renderRows(w, h int) string {
	rows := a.visibleRows()
	if len(rows) == 0 {
		return dimStyle.Render("no records")
	}

	var lines []string
	end := min(a.offset+h, len(rows))
	for i := a.offset; i < end; i++ {
		r := rows[i]
		verdict := fmt.Sprintf("%-4s %-7s", r.decision, r.reason)
		line := fmt.Sprintf("%s %s %-16s %s",
			DecisionStyle(r.decision).Render(verdict),
			LevelStyle(r.record.Level).Render(fmt.Sprintf("%-7s", r.record.Level)),
			truncate(r.record.Tag, 16),
			truncate(r.record.Message, max(w-rowPrefixW, 10)),
		)
		if i == a.offset {
			line = selectedStyle.Render("▸") + " " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderStatusBar() string {
	counts := fmt.Sprintf(" %d/%d kept ", a.kept, len(a.rows))
	if a.hideDropped {
		counts += "(dropped hidden) "
	}
	status := dimStyle.Render(a.statusMsg)
	if strings.HasPrefix(a.statusMsg, "error:") {
		status = errorStyle.Render(a.statusMsg)
	}
	help := helpStyle.Render("  tab:next field  ↑↓:scroll  ctrl+t:hide dropped  esc:quit")
	return titleStyle.Render(counts) + status + "\n" + help
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
