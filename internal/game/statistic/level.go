package statistic

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a creature power tier. Tables are keyed by the discrete values
// MinLevel through MaxLevel.
type Level int

const (
	MinLevel Level = -1
	MaxLevel Level = 24

	// DefaultLevel is substituted for levels outside the valid range.
	DefaultLevel Level = 1
)

// Valid reports whether l lies within [MinLevel, MaxLevel].
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Or returns l when valid and fallback otherwise.
//
// Precondition: fallback must be valid.
func (l Level) Or(fallback Level) Level {
	if l.Valid() {
		return l
	}
	return fallback
}

// String returns the table key form of the level, e.g. "-1" or "5".
func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// Levels returns every valid level in ascending order.
func Levels() []Level {
	out := make([]Level, 0, int(MaxLevel-MinLevel)+1)
	for l := MinLevel; l <= MaxLevel; l++ {
		out = append(out, l)
	}
	return out
}

// ParseLevel parses a level key such as "5" or "-1".
//
// Postcondition: Returns a valid Level or an error; out-of-range integers are errors.
func ParseLevel(s string) (Level, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parsing level %q: %w", s, err)
	}
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("level %d outside [%d, %d]", n, MinLevel, MaxLevel)
	}
	return l, nil
}
