package http

import (
	"net/http"
	"strings"

	"bank-ledger/internal/domain/ledger"

	"github.com/labstack/echo/v4"
)

// decode binds and validates req. When ok is false the error response has
// already been written and err is what the handler should return.
func decode(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid body",
			Kind:  string(ledger.KindInvalidInput),
		})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Kind:    string(ledger.KindInvalidInput),
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
