package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// Level is the severity of a log record. Levels are totally ordered;
// a higher value is more severe.
type Level int

const (
	// LevelNone is the lowest possible level. It is the default filter
	// threshold and what unrecognised level names resolve to.
	LevelNone Level = iota
	LevelVerbose
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelAssert
)

var levelNames = [...]string{
	LevelNone:    "none",
	LevelVerbose: "verbose",
	LevelDebug:   "debug",
	LevelInfo:    "info",
	LevelWarn:    "warn",
	LevelError:   "error",
	LevelFatal:   "fatal",
	LevelAssert:  "assert",
}

// levelAliases maps lower-case names and single-letter logcat codes to levels.
var levelAliases = map[string]Level{
	"none":    LevelNone,
	"v":       LevelVerbose,
	"verbose": LevelVerbose,
	"t":       LevelVerbose,
	"trace":   LevelVerbose,
	"d":       LevelDebug,
	"debug":   LevelDebug,
	"i":       LevelInfo,
	"info":    LevelInfo,
	"w":       LevelWarn,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"e":       LevelError,
	"error":   LevelError,
	"f":       LevelFatal,
	"fatal":   LevelFatal,
	"a":       LevelAssert,
	"assert":  LevelAssert,
}

// LookupLevel resolves a level name case-insensitively. The boolean is
// false when the name is not in the table.
func LookupLevel(name string) (Level, bool) {
	l, ok := levelAliases[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// ParseLevel resolves a level name. Empty and unrecognised names resolve
// to LevelNone, so a threshold built from them lets every record through.
func ParseLevel(name string) Level {
	l, _ := LookupLevel(name)
	return l
}

func (l Level) String() string {
	if l < LevelNone || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if l < LevelNone || int(l) >= len(levelNames) {
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText decodes a level name using the same rules as ParseLevel.
// A single digit 0-7 is read as a syslog/journald priority, the way
// journald exports PRIORITY.
func (l *Level) UnmarshalText(text []byte) error {
	if p, ok := parsePriority(string(text)); ok {
		*l = LevelFromPriority(p)
		return nil
	}
	*l = ParseLevel(string(text))
	return nil
}

// UnmarshalJSON accepts a level name or a numeric priority.
func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode level: %w", err)
		}
		return l.UnmarshalText([]byte(s))
	}
	p, ok := parsePriority(string(data))
	if !ok {
		return fmt.Errorf("invalid priority %s: want 0-7", data)
	}
	*l = LevelFromPriority(p)
	return nil
}

func parsePriority(s string) (journal.Priority, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < int(journal.PriEmerg) || n > int(journal.PriDebug) {
		return 0, false
	}
	return journal.Priority(n), true
}

// LevelFromPriority maps a syslog/journald priority onto a level.
func LevelFromPriority(p journal.Priority) Level {
	switch p {
	case journal.PriEmerg, journal.PriAlert:
		return LevelAssert
	case journal.PriCrit:
		return LevelFatal
	case journal.PriErr:
		return LevelError
	case journal.PriWarning:
		return LevelWarn
	case journal.PriNotice, journal.PriInfo:
		return LevelInfo
	case journal.PriDebug:
		return LevelDebug
	default:
		return LevelNone
	}
}

// Priority maps the level onto the closest journald priority. LevelNone
// and LevelVerbose have no journald equivalent and map to PriDebug.
func (l Level) Priority() journal.Priority {
	switch {
	case l >= LevelAssert:
		return journal.PriAlert
	case l == LevelFatal:
		return journal.PriCrit
	case l == LevelError:
		return journal.PriErr
	case l == LevelWarn:
		return journal.PriWarning
	case l == LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}
