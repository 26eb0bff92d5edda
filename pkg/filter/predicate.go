package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/modoterra/logsift/pkg/core"
)

// Decision is the outcome of evaluating a record.
type Decision int

const (
	Keep Decision = iota
	Drop
)

func (d Decision) String() string {
	if d == Keep {
		return "keep"
	}
	return "drop"
}

// Reason names the check that decided a record.
type Reason int

const (
	ReasonPassed  Reason = iota // every configured check passed
	ReasonLevel                 // level below threshold
	ReasonMessage               // no message pattern matched
	ReasonTag                   // no tag pattern matched
)

func (r Reason) String() string {
	switch r {
	case ReasonLevel:
		return "level"
	case ReasonMessage:
		return "message"
	case ReasonTag:
		return "tag"
	default:
		return "passed"
	}
}

// Predicate is a compiled, immutable filter.
type Predicate struct {
	threshold core.Level
	msg       []*regexp.Regexp
	tag       []*regexp.Regexp
}

// New builds a predicate from a level name and two optional pattern lists.
// The level name is resolved with core.ParseLevel; an empty or unknown name
// gives a threshold of core.LevelNone. A nil pattern list places no
// constraint on its field.
func New(level string, msg, tag []string) (*Predicate, error) {
	m, err := Compile(msg)
	if err != nil {
		return nil, fmt.Errorf("msg: %w", err)
	}
	t, err := Compile(tag)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	return &Predicate{
		threshold: core.ParseLevel(level),
		msg:       m,
		tag:       t,
	}, nil
}

// Decide reports whether r should be kept.
func (p *Predicate) Decide(r *core.Record) Decision {
	d, _ := p.Explain(r)
	return d
}

// Explain is Decide plus the check that produced the decision. Checks run
// in order: level, message, tag.
func (p *Predicate) Explain(r *core.Record) (Decision, Reason) {
	if r.Level < p.threshold {
		return Drop, ReasonLevel
	}
	if !matchAny(p.msg, r.Message) {
		return Drop, ReasonMessage
	}
	if !matchAny(p.tag, r.Tag) {
		return Drop, ReasonTag
	}
	return Keep, ReasonPassed
}

// Threshold returns the minimum level a record needs to be kept.
func (p *Predicate) Threshold() core.Level { return p.threshold }

// MessagePatterns returns the source of the message patterns.
func (p *Predicate) MessagePatterns() []string { return sources(p.msg) }

// TagPatterns returns the source of the tag patterns.
func (p *Predicate) TagPatterns() []string { return sources(p.tag) }

func (p *Predicate) String() string {
	return fmt.Sprintf("level>=%s msg=[%s] tag=[%s]",
		p.threshold, strings.Join(p.MessagePatterns(), ", "), strings.Join(p.TagPatterns(), ", "))
}

func sources(patterns []*regexp.Regexp) []string {
	if len(patterns) == 0 {
		return nil
	}
	out := make([]string, len(patterns))
	for i, re := range patterns {
		out[i] = re.String()
	}
	return out
}
