package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Source supplies die faces. Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(v.Int64())
}

// RollResult is one evaluated roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression Expression
	Dice       []int
}

// Total sums the dice and the modifier.
func (r RollResult) Total() int {
	total := r.Expression.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders "2d6+3 → [4 5] = 12".
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v = %d", r.Expression, r.Dice, r.Total())
}

// Roll evaluates expr against src.
//
// Precondition: expr came from Parse; src is non-nil.
// Postcondition: expr.Min() <= Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	faces := make([]int, expr.Count)
	for i := range faces {
		faces[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{Expression: expr, Dice: faces}
}

// Roller rolls sample strike damage and logs each roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller drawing from src. A nil logger discards.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// RollExpr parses expr and rolls it.
//
// Postcondition: Returns a parse error for malformed expr; rolling never fails.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	res := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.Stringer("expression", e),
		zap.Ints("dice", res.Dice),
		zap.Int("total", res.Total()),
	)
	return res, nil
}
