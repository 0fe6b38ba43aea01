package http

import (
	"context"
	"net/http"

	domainLoan "bank-ledger/internal/domain/loan"
	"bank-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// ApprovalHandler serves the admin decisions on pending loans.
type ApprovalHandler struct{ uc *loan.Usecase }

func NewApprovalHandler(uc *loan.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type decideLoanReq struct {
	LoanID string `param:"loan_id" json:"loan_id" validate:"required,hex32"`
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	return h.decide(c, h.uc.Approve)
}

func (h *ApprovalHandler) RejectLoan(c echo.Context) error {
	return h.decide(c, h.uc.Reject)
}

func (h *ApprovalHandler) decide(c echo.Context, fn func(context.Context, string) (*domainLoan.Loan, error)) error {
	// Validate path param
	var req decideLoanReq
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid path"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	// Map domain errors → HTTP codes
	l, err := fn(c.Request().Context(), req.LoanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
