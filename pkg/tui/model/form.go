package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/logsift/pkg/config"
)

// FormField is a named text input in the filter form.
type FormField struct {
	Label string
	Input textinput.Model
}

// FilterForm edits the three filter inputs.
type FilterForm struct {
	fields    []FormField
	activeIdx int
}

const (
	fieldLevel = iota
	fieldMsg
	fieldTag
)

// NewFilterForm creates a form pre-filled from f. Pattern lists are shown
// comma separated, with commas inside a pattern written as \,.
func NewFilterForm(f config.Filter) *FilterForm {
	fields := []FormField{
		newField("level", f.Level),
		newField("msg", joinPatterns(f.Msg)),
		newField("tag", joinPatterns(f.Tag)),
	}
	fields[0].Input.Focus()
	return &FilterForm{fields: fields}
}

func newField(label, value string) FormField {
	ti := textinput.New()
	ti.Placeholder = label
	ti.SetValue(value)
	ti.CharLimit = 256
	return FormField{Label: label, Input: ti}
}

// Filter returns the form contents as a config.Filter.
func (f *FilterForm) Filter() config.Filter {
	return config.Filter{
		Level: strings.TrimSpace(f.fields[fieldLevel].Input.Value()),
		Msg:   splitPatterns(f.fields[fieldMsg].Input.Value()),
		Tag:   splitPatterns(f.fields[fieldTag].Input.Value()),
	}
}

func joinPatterns(patterns []string) string {
	escaped := make([]string, len(patterns))
	for i, p := range patterns {
		escaped[i] = strings.ReplaceAll(p, ",", `\,`)
	}
	return strings.Join(escaped, ", ")
}

// splitPatterns splits a comma separated list, reading \, as a literal
// comma. Blank entries are skipped, so a cleared field yields nil and
// removes its constraint.
func splitPatterns(s string) []string {
	var parts []string
	var cur strings.Builder
	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			parts = append(parts, p)
		}
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ',':
			cur.WriteByte(',')
			i++
		case s[i] == ',':
			flush()
		default:
			cur.WriteByte(s[i])
		}
	}
	flush()
	return parts
}

// Next moves focus to the following field.
func (f *FilterForm) Next() tea.Cmd {
	return f.focus((f.activeIdx + 1) % len(f.fields))
}

// Prev moves focus to the preceding field.
func (f *FilterForm) Prev() tea.Cmd {
	return f.focus((f.activeIdx - 1 + len(f.fields)) % len(f.fields))
}

func (f *FilterForm) focus(idx int) tea.Cmd {
	f.fields[f.activeIdx].Input.Blur()
	f.activeIdx = idx
	f.fields[f.activeIdx].Input.Focus()
	return textinput.Blink
}

// Update forwards a key to the focused input and reports whether its value
// changed.
func (f *FilterForm) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	before := f.fields[f.activeIdx].Input.Value()
	var cmd tea.Cmd
	f.fields[f.activeIdx].Input, cmd = f.fields[f.activeIdx].Input.Update(msg)
	return f.fields[f.activeIdx].Input.Value() != before, cmd
}

// View renders the form.
func (f *FilterForm) View() string {
	var b strings.Builder
	for i, fld := range f.fields {
		prefix := "  "
		if i == f.activeIdx {
			prefix = "▸ "
		}
		b.WriteString(prefix + dimStyle.Render(fld.Label+": ") + fld.Input.View() + "\n")
	}
	return b.String()
}
