package generation

import "errors"

// Sentinel errors for generation inputs.
var (
	ErrInvalidTone  = errors.New("invalid tone")
	ErrNoGenerators = errors.New("no generators enabled")
)
