// Package dice parses strike damage expressions such as "2d8+7 piercing" and
// rolls sample damage from them.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:\s*([+-])\s*(\d+))?(?:\s+([a-z][a-z ]*))?$`)

// Expression is a parsed damage expression: Count dice of Sides faces plus
// Modifier, optionally tagged with a damage type.
//
// Invariant: Count >= 1 and Sides >= 2 for every Expression returned by Parse.
type Expression struct {
	Raw        string
	Count      int
	Sides      int
	Modifier   int
	DamageType string
}

// Parse reads "XdY", "XdY+Z", or "XdY-Z", with an optional trailing damage
// type. A missing count means one die. Case and surrounding space are ignored.
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}

	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("dice: die count in %q must be >= 1", expr)
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be >= 2", expr)
	}
	mod := 0
	if m[4] != "" {
		mod, err = strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: modifier in %q: %w", expr, err)
		}
		if m[3] == "-" {
			mod = -mod
		}
	}
	return Expression{
		Raw:        expr,
		Count:      count,
		Sides:      sides,
		Modifier:   mod,
		DamageType: strings.TrimSpace(m[5]),
	}, nil
}

// MustParse is Parse for expressions known to be valid, such as table cells.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Average is the expected total, the value rating detection compares.
func (e Expression) Average() float64 {
	return float64(e.Count)*float64(e.Sides+1)/2 + float64(e.Modifier)
}

// Min is the lowest possible total.
func (e Expression) Min() int { return e.Count + e.Modifier }

// Max is the highest possible total.
func (e Expression) Max() int { return e.Count*e.Sides + e.Modifier }

// String renders the canonical form, e.g. "2d8+7 piercing".
func (e Expression) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Sides)
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	if e.DamageType != "" {
		b.WriteString(" " + e.DamageType)
	}
	return b.String()
}
