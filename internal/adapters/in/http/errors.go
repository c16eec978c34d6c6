package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorClass struct {
	target error
	status int
	kind   string
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{errs.ErrInvariantViolation, http.StatusInternalServerError, "INVARIANT_VIOLATION"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "NOT_FOUND"},
	{errs.ErrUnauthorizedActor, http.StatusForbidden, "UNAUTHORIZED_ACTOR"},
	{errs.ErrSelfResponse, http.StatusForbidden, "SELF_RESPONSE"},
	{errs.ErrIllegalTransition, http.StatusConflict, "ILLEGAL_TRANSITION"},
	{errs.ErrStaleNegotiation, http.StatusConflict, "STALE_NEGOTIATION"},
	{errs.ErrProductionNotApproved, http.StatusConflict, "PRODUCTION_NOT_APPROVED"},
	{errs.ErrIllegalStageSkip, http.StatusConflict, "ILLEGAL_STAGE_SKIP"},
	{errs.ErrInvalidPaymentState, http.StatusConflict, "INVALID_PAYMENT_STATE"},
	{errs.ErrPaymentGateNotSatisfied, http.StatusConflict, "PAYMENT_GATE_NOT_SATISFIED"},
	{errs.ErrPaymentExceedsTotal, http.StatusConflict, "PAYMENT_EXCEEDS_TOTAL"},
	{errs.ErrConcurrentModification, http.StatusConflict, "CONCURRENT_MODIFICATION"},
	{errs.ErrEmptyReason, http.StatusUnprocessableEntity, "EMPTY_REASON"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "VALUE_IS_REQUIRED"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "VALUE_IS_OUT_OF_RANGE"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "VALUE_IS_INVALID"},
}

// writeError translates a use case error into a response. Invariant
// violations and unclassified errors are logged and answered with 500
// without leaking details.
func (s *Server) writeError(c echo.Context, err error) error {
	for _, class := range errorClasses {
		if !errors.Is(err, class.target) {
			continue
		}
		if class.status >= http.StatusInternalServerError {
			s.logger.ErrorContext(c.Request().Context(), "invariant violated",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err))
			return c.JSON(class.status, Error{Code: class.status, Kind: class.kind, Message: "internal error"})
		}
		return c.JSON(class.status, Error{Code: class.status, Kind: class.kind, Message: err.Error()})
	}

	s.logger.ErrorContext(c.Request().Context(), "request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Kind:    "INTERNAL",
		Message: "internal error",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    "INVALID_REQUEST",
		Message: message,
	})
}
