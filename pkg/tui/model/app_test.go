package model

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/logsift/pkg/config"
	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

func sampleRecords() []*core.Record {
	return []*core.Record{
		{Level: core.LevelDebug, Tag: "net", Message: "dial ok"},
		{Level: core.LevelWarn, Tag: "net", Message: "read timeout"},
		{Level: core.LevelError, Tag: "db", Message: "connection refused"},
		{Level: core.LevelInfo, Tag: "ui", Message: "frame rendered"},
	}
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m.(App)
}

func press(t *testing.T, a App, k tea.KeyType) App {
	t.Helper()
	m, _ := a.Update(tea.KeyMsg{Type: k})
	return m.(App)
}

func TestNewEvaluatesInitialFilter(t *testing.T) {
	a := New(sampleRecords(), config.Filter{Level: "warn"})
	if a.kept != 2 {
		t.Errorf("kept: got %d, want 2", a.kept)
	}
	if len(a.rows) != 4 {
		t.Fatalf("rows: got %d, want 4", len(a.rows))
	}
	if a.rows[0].reason != filter.ReasonLevel {
		t.Errorf("first row reason: got %s", a.rows[0].reason)
	}
}

func TestNewWithInvalidFilterKeepsEverything(t *testing.T) {
	a := New(sampleRecords(), config.Filter{Msg: []string{"("}})
	if a.kept != 4 {
		t.Errorf("kept: got %d, want 4", a.kept)
	}
	if !strings.HasPrefix(a.statusMsg, "error:") {
		t.Errorf("status: got %q", a.statusMsg)
	}
}

func TestTypingRebuildsPredicate(t *testing.T) {
	a := New(sampleRecords(), config.Filter{})
	if a.kept != 4 {
		t.Fatalf("kept: got %d, want 4", a.kept)
	}

	a = press(t, a, tea.KeyTab) // msg field
	a = typeText(t, a, "timeout,refused")
	if a.kept != 2 {
		t.Errorf("kept after msg: got %d, want 2", a.kept)
	}

	a = press(t, a, tea.KeyTab) // tag field
	a = typeText(t, a, "^db$")
	if a.kept != 1 {
		t.Errorf("kept after tag: got %d, want 1", a.kept)
	}
	if got := a.pred.TagPatterns(); len(got) != 1 || got[0] != "^db$" {
		t.Errorf("tag patterns: got %v", got)
	}
}

func TestInvalidPatternKeepsLastPredicate(t *testing.T) {
	a := New(sampleRecords(), config.Filter{Level: "info"})
	before := a.pred

	a = press(t, a, tea.KeyTab)
	a = typeText(t, a, "(")
	if a.pred != before {
		t.Error("predicate replaced by an invalid one")
	}
	if !strings.Contains(a.statusMsg, `"("`) {
		t.Errorf("status should name the pattern: %q", a.statusMsg)
	}

	a = typeText(t, a, ")")
	if a.pred == before {
		t.Error("predicate not rebuilt after fixing the pattern")
	}
}

func TestHideDropped(t *testing.T) {
	a := New(sampleRecords(), config.Filter{Level: "error"})
	if n := len(a.visibleRows()); n != 4 {
		t.Errorf("visible: got %d, want 4", n)
	}
	a = press(t, a, tea.KeyCtrlT)
	if n := len(a.visibleRows()); n != 1 {
		t.Errorf("visible with dropped hidden: got %d, want 1", n)
	}
}

func TestScrollBounds(t *testing.T) {
	a := New(sampleRecords(), config.Filter{})
	a = press(t, a, tea.KeyUp)
	if a.offset != 0 {
		t.Errorf("offset below zero: %d", a.offset)
	}
	for i := 0; i < 10; i++ {
		a = press(t, a, tea.KeyDown)
	}
	if a.offset != 3 {
		t.Errorf("offset: got %d, want 3", a.offset)
	}
}

func TestQuit(t *testing.T) {
	a := New(sampleRecords(), config.Filter{})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestView(t *testing.T) {
	a := New(sampleRecords(), config.Filter{Level: "warn"})
	if got := a.View(); got != "loading..." {
		t.Errorf("view before size: got %q", got)
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	for _, want := range []string{"Filter", "read timeout", "2/4 kept"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,", []string{"a"}},
		{",,", nil},
		{`a{1\,3}, b`, []string{"a{1,3}", "b"}},
	}
	for _, tt := range tests {
		got := splitPatterns(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || (got == nil) != (tt.want == nil) {
			t.Errorf("splitPatterns(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormKeepsCommasInsidePatterns(t *testing.T) {
	in := config.Filter{Msg: []string{"a{1,3}", "x"}, Tag: []string{`\d{2,}`}}
	a := New(sampleRecords(), in)

	got := a.form.Filter()
	if strings.Join(got.Msg, "|") != "a{1,3}|x" {
		t.Errorf("msg: got %q", got.Msg)
	}
	if len(got.Tag) != 1 || got.Tag[0] != `\d{2,}` {
		t.Errorf("tag: got %q", got.Tag)
	}
	if msgs := a.pred.MessagePatterns(); len(msgs) != 2 || msgs[0] != "a{1,3}" {
		t.Errorf("predicate patterns: got %q", msgs)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("got %q", got)
	}
}
