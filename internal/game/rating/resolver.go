// Package rating maps between numeric creature statistics and qualitative
// ratings using the per-level creature-building tables.
package rating

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/game/dice"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

var (
	// ErrUnknownStatistic is returned when a statistic has no table.
	ErrUnknownStatistic = errors.New("unknown statistic")
	// ErrUnknownLevel is returned when a level has no row in a statistic's table.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrUnknownRating is returned when a statistic's table has no column for a rating.
	ErrUnknownRating = errors.New("unknown rating")
)

// Value is a resolved statistic value. Number is set for every numeric
// statistic; Damage holds a dice expression for strike damage.
type Value struct {
	Number int
	Damage string
}

// String renders the value the way a statblock shows it.
func (v Value) String() string {
	if v.Damage != "" {
		return v.Damage
	}
	return fmt.Sprintf("%d", v.Number)
}

type candidate struct {
	rating statistic.Rating
	value  float64
}

// ResolveValue looks up the value for (stat, level, r).
//
// Precondition: level should already be clamped by the caller.
// Postcondition: Returns the value, or an error wrapping ErrUnknownStatistic,
// ErrUnknownLevel, or ErrUnknownRating. RatingNone always yields ErrUnknownRating.
func ResolveValue(stat statistic.ID, level statistic.Level, r statistic.Rating) (Value, error) {
	if stat == statistic.StrikeDamage {
		row, ok := strikeDamageTable.rows[level]
		if !ok {
			return Value{}, fmt.Errorf("%w: %s at level %s", ErrUnknownLevel, stat, level)
		}
		for i, col := range strikeDamageTable.ratings {
			if col == r {
				return Value{Damage: row[i]}, nil
			}
		}
		return Value{}, fmt.Errorf("%w: %s has no %q column", ErrUnknownRating, stat, r)
	}
	t, ok := numericTables[stat]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownStatistic, stat)
	}
	row, ok := t.rows[level]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s at level %s", ErrUnknownLevel, stat, level)
	}
	for i, col := range t.ratings {
		if col == r {
			return Value{Number: row[i]}, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %s has no %q column", ErrUnknownRating, stat, r)
}

// Ratings returns the ratings a statistic's table supports, strongest first.
//
// Postcondition: Returns nil for statistics without a table.
func Ratings(stat statistic.ID) []statistic.Rating {
	if stat == statistic.StrikeDamage {
		return append([]statistic.Rating(nil), strikeDamageTable.ratings...)
	}
	if t, ok := numericTables[stat]; ok {
		return append([]statistic.Rating(nil), t.ratings...)
	}
	return nil
}

// Resolver performs the detect direction: numeric value to rating. Lookup
// failures never surface to the caller; they are logged and replaced by
// statistic.Moderate.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver that reports fallbacks to logger.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// ResolveValue is the build direction; see the package-level ResolveValue.
func (r *Resolver) ResolveValue(stat statistic.ID, level statistic.Level, rt statistic.Rating) (Value, error) {
	return ResolveValue(stat, level, rt)
}

// ResolveRating returns the rating whose table value lies closest to observed.
// Saves resolve against the perception progression.
//
// Postcondition: Returns statistic.Moderate when stat or level is unknown.
// Exact ties resolve to the stronger rating.
func (r *Resolver) ResolveRating(stat statistic.ID, level statistic.Level, observed int) statistic.Rating {
	if stat == statistic.StrikeDamage {
		r.logger.Warn("strike damage requires a dice expression; use DetectStrikeDamage",
			zap.String("statistic", string(stat)))
		return statistic.Moderate
	}
	t, ok := numericTables[stat]
	if !ok {
		r.logger.Warn("no table for statistic; defaulting to moderate",
			zap.String("statistic", string(stat)))
		return statistic.Moderate
	}
	return r.nearest(stat, level, t, float64(observed))
}

// DetectHitPoints is ResolveRating specialised to the hit point brackets.
func (r *Resolver) DetectHitPoints(level statistic.Level, observed int) statistic.Rating {
	return r.nearest(statistic.HitPoints, level, &hitPointTable, float64(observed))
}

// DetectStrikeDamage compares the average of expr against the average of each
// strike damage column at level.
//
// Postcondition: Returns statistic.Moderate when level is unknown or expr does
// not parse.
func (r *Resolver) DetectStrikeDamage(level statistic.Level, expr string) statistic.Rating {
	observed, err := dice.Parse(expr)
	if err != nil {
		r.logger.Warn("unparseable strike damage; defaulting to moderate",
			zap.String("damage", expr), zap.Error(err))
		return statistic.Moderate
	}
	row, ok := strikeDamageTable.rows[level]
	if !ok {
		r.logger.Warn("no strike damage row for level; defaulting to moderate",
			zap.Stringer("level", level))
		return statistic.Moderate
	}
	candidates := make([]candidate, 0, len(row))
	for i, col := range strikeDamageTable.ratings {
		candidates = append(candidates, candidate{rating: col, value: dice.MustParse(row[i]).Average()})
	}
	return closest(candidates, observed.Average())
}

func (r *Resolver) nearest(stat statistic.ID, level statistic.Level, t *table, observed float64) statistic.Rating {
	row, ok := t.rows[level]
	if !ok {
		r.logger.Warn("no table row for level; defaulting to moderate",
			zap.String("statistic", string(stat)),
			zap.Stringer("level", level))
		return statistic.Moderate
	}
	candidates := make([]candidate, 0, len(row))
	for i, col := range t.ratings {
		candidates = append(candidates, candidate{rating: col, value: float64(row[i])})
	}
	return closest(candidates, observed)
}

// closest performs the nearest-value search. On equal distance the stronger
// rating wins regardless of candidate order.
func closest(candidates []candidate, observed float64) statistic.Rating {
	best := statistic.Moderate
	bestDiff := math.Inf(1)
	for _, c := range candidates {
		diff := math.Abs(observed - c.value)
		if diff < bestDiff || (diff == bestDiff && c.rating.Stronger(best)) {
			best = c.rating
			bestDiff = diff
		}
	}
	return best
}
