package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring only, dumped on failure
	LevelPhase               // driver and file boundaries
	LevelDetail              // passes
	LevelDebug               // node visits as well
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag or config value; the empty string is off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope recorded at l.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopeFile
	case LevelError, LevelDetail:
		// на уровне error кольцо хранит проходы, чтобы дамп при падении был полезен
		return ScopePass
	case LevelDebug:
		return ScopeNode
	}
	return 0
}

// ShouldEmit reports whether events of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && scope <= l.maxScope()
}
