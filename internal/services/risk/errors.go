package risk

import "errors"

// Service errors. Malformed input is the only condition Assess
// surfaces to the caller; everything else degrades into the score.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
)
