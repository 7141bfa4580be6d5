package handlers

import (
	"cleaning-route-service/internal/domain"
	"context"
	"errors"
	"net/http"
)

// statusFor maps the domain error taxonomy to an HTTP status. The order
// matters: a throttled or timed-out solver call also wraps ErrUpstreamFailure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSolverThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrEmptyProblem),
		errors.Is(err, domain.ErrHorizonViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstreamFailure),
		errors.Is(err, domain.ErrMalformedSolverOutput):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidDriverRecord),
		errors.Is(err, domain.ErrMalformedTimestamp):
		// bad roster or policy data on our side, not a caller mistake
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// classified lists the errors whose text is safe and useful to return.
var classified = []error{
	domain.ErrMalformedTimestamp,
	domain.ErrInvalidDriverRecord,
	domain.ErrEmptyProblem,
	domain.ErrHorizonViolation,
	domain.ErrMalformedSolverOutput,
	domain.ErrUpstreamFailure,
	domain.ErrSolverThrottled,
	context.DeadlineExceeded,
}

// errorMessage exposes classified failures verbatim and hides the rest.
func errorMessage(err error) string {
	for _, target := range classified {
		if errors.Is(err, target) {
			return err.Error()
		}
	}
	return "internal server error"
}
