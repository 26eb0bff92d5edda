package filter

import (
	"context"

	"github.com/modoterra/logsift/pkg/core"
)

// Stage adapts a Predicate to core.Node.
type Stage struct {
	pred *Predicate
}

var _ core.Node = (*Stage)(nil)

// NewStage returns a pipeline stage that filters records with p. A nil p
// keeps every record.
func NewStage(p *Predicate) *Stage {
	if p == nil {
		p = &Predicate{}
	}
	return &Stage{pred: p}
}

// Predicate returns the predicate the stage evaluates.
func (s *Stage) Predicate() *Predicate { return s.pred }

// Process returns m unchanged unless it carries a record the predicate
// rejects, in which case it returns core.Drop. It never blocks and never
// fails; ctx is accepted to satisfy core.Node.
func (s *Stage) Process(_ context.Context, m core.Message) (core.Message, error) {
	rm, ok := m.(core.RecordMessage)
	if !ok || rm.Record == nil {
		return m, nil
	}
	if s.pred.Decide(rm.Record) == Drop {
		return core.Drop{}, nil
	}
	return m, nil
}
