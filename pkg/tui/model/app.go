package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/logsift/pkg/config"
	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

// row is a sample record with its current verdict.
type row struct {
	record   *core.Record
	decision filter.Decision
	reason   filter.Reason
}

// App is the root Bubble Tea model of the filter playground.
type App struct {
	// State
	records []*core.Record
	rows    []row
	pred    *filter.Predicate
	kept    int

	// UI
	form        *FilterForm
	hideDropped bool
	offset      int
	width       int
	height      int

	// Error display
	statusMsg string
}

// New creates a playground over records, starting from the filter f. If f
// does not compile the playground starts with an unconstrained filter and
// shows the error.
func New(records []*core.Record, f config.Filter) App {
	a := App{
		records: records,
		form:    NewFilterForm(f),
	}
	a.rebuild()
	if a.pred == nil {
		a.pred, _ = filter.New("", nil, nil)
		a.evaluate()
	}
	return a
}

// Init starts the cursor blinking.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("logsift"),
		a.form.focus(a.form.activeIdx),
	)
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return a, tea.Quit

	case "tab":
		return a, a.form.Next()
	case "shift+tab":
		return a, a.form.Prev()

	case "down":
		if a.offset < len(a.visibleRows())-1 {
			a.offset++
		}
		return a, nil
	case "up":
		if a.offset > 0 {
			a.offset--
		}
		return a, nil

	case "ctrl+t":
		a.hideDropped = !a.hideDropped
		a.offset = 0
		return a, nil
	}

	changed, cmd := a.form.Update(msg)
	if changed {
		a.rebuild()
	}
	return a, cmd
}

// rebuild compiles the form contents. On failure the previous predicate
// stays in effect and the error is shown.
func (a *App) rebuild() {
	p, err := a.form.Filter().Predicate()
	if err != nil {
		a.statusMsg = "error: " + err.Error()
		return
	}
	a.pred = p
	a.statusMsg = p.String()
	a.evaluate()
}

func (a *App) evaluate() {
	a.rows = make([]row, 0, len(a.records))
	a.kept = 0
	for _, r := range a.records {
		d, reason := a.pred.Explain(r)
		if d == filter.Keep {
			a.kept++
		}
		a.rows = append(a.rows, row{record: r, decision: d, reason: reason})
	}
	if a.offset >= len(a.visibleRows()) {
		a.offset = max(0, len(a.visibleRows())-1)
	}
}

func (a App) visibleRows() []row {
	if !a.hideDropped {
		return a.rows
	}
	var out []row
	for _, r := range a.rows {
		if r.decision == filter.Keep {
			out = append(out, r)
		}
	}
	return out
}
