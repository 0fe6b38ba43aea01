package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bank-ledger/internal/domain/ledger"

	"github.com/labstack/echo/v4"
)

func statusOf(k ledger.Kind) int {
	switch k {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindInvalidInput, ledger.KindInsufficientFunds, ledger.KindInvalidTransfer:
		return http.StatusBadRequest
	case ledger.KindDuplicateAccount, ledger.KindInvalidState:
		return http.StatusConflict
	case ledger.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a usecase error onto its HTTP status. Storage and
// internal faults are logged and their causes are not echoed back.
func writeError(c echo.Context, err error) error {
	var le *ledger.Error
	if !errors.As(err, &le) {
		slog.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	status := statusOf(le.Kind)
	msg := le.Error()
	switch le.Kind {
	case ledger.KindStorageUnavailable:
		slog.WarnContext(c.Request().Context(), "storage unavailable", "path", c.Path(), "err", err)
		msg = "storage unavailable, retry later"
	case ledger.KindInvariantViolation, ledger.KindExhaustedIDSpace:
		slog.ErrorContext(c.Request().Context(), "ledger fault", "path", c.Path(), "kind", le.Kind, "err", err)
	}
	return c.JSON(status, ErrorResponse{Error: msg, Kind: string(le.Kind)})
}
