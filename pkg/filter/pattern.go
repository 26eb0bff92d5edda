// Package filter decides which log records continue down the pipeline.
//
// A Predicate combines a minimum level with two pattern sets, one for the
// message text and one for the tag. A record is kept when its level is at
// or above the threshold, at least one message pattern matches (if any are
// configured) and at least one tag pattern matches (if any are
// configured). Patterns are unanchored regular expressions.
//
// All validation happens in New; a constructed Predicate is immutable and
// safe for concurrent use.
package filter

import (
	"fmt"
	"regexp"
)

// PatternError reports a pattern string that is not a valid regular
// expression.
type PatternError struct {
	Pattern string
	Index   int // position in the list the pattern came from
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %d %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile compiles raw in order. A nil slice yields no patterns, which
// places no constraint on the field. The first invalid pattern aborts
// compilation with a *PatternError.
func Compile(raw []string) ([]*regexp.Regexp, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	res := make([]*regexp.Regexp, 0, len(raw))
	for i, s := range raw {
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, &PatternError{Pattern: s, Index: i, Err: err}
		}
		res = append(res, re)
	}
	return res, nil
}

// matchAny reports whether any pattern matches s. An empty set matches.
func matchAny(patterns []*regexp.Regexp, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
