package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged range rolls.
// All rolls are logged at debug level with the range and the drawn value.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced by zap.NewNop().
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the Source backing this Roller.
func (r *Roller) Source() Source { return r.src }

// Roll draws one value from rng and logs it at debug level.
//
// Postcondition: rng.Contains(result).
func (r *Roller) Roll(rng Range) int {
	v := rng.Roll(r.src)
	r.logger.Debug("dice roll",
		zap.Stringer("range", rng),
		zap.Int("result", v),
	)
	return v
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid range expression string.
// Postcondition: Returns the drawn value or a parse error.
func (r *Roller) RollExpr(expr string) (int, error) {
	rng, err := ParseRange(expr)
	if err != nil {
		return 0, err
	}
	return r.Roll(rng), nil
}
