package domain

import "errors"

// Error taxonomy for problem construction and solution handling.
// Callers classify failures with errors.Is; every error returned by the
// compilers, the assembler and the normalizer wraps exactly one of these.
var (
	ErrMalformedTimestamp    = errors.New("malformed timestamp")
	ErrInvalidDriverRecord   = errors.New("invalid driver record")
	ErrEmptyProblem          = errors.New("empty problem")
	ErrHorizonViolation      = errors.New("horizon violation")
	ErrMalformedSolverOutput = errors.New("malformed solver output")
	ErrUpstreamFailure       = errors.New("upstream failure")

	// ErrSolverThrottled is reported alongside ErrUpstreamFailure when the
	// local quota guard refuses to issue another optimizer call.
	ErrSolverThrottled = errors.New("solver call throttled")
)
