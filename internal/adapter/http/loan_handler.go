package http

import (
	"net/http"

	"bank-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type emiCalcReq struct {
	Amount     decimal.Decimal `json:"amount"      validate:"required,gt=0,dec2"`
	AnnualRate decimal.Decimal `json:"annual_rate" validate:"gte=0,lte=100"`
	Months     int             `json:"months"      validate:"required,gte=1,lte=600"`
}

type applyLoanReq struct {
	UserID string `json:"user_id" validate:"required,hex32"`
	emiCalcReq
}

type payEMIReq struct {
	UserID string          `json:"user_id" validate:"required,hex32"`
	LoanID string          `json:"loan_id" validate:"required,hex32"`
	Amount decimal.Decimal `json:"amount"  validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) QuoteEMI(c echo.Context) error {
	var req emiCalcReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	q, err := h.uc.Quote(req.Amount, req.AnnualRate, req.Months)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	l, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		UserID:     req.UserID,
		Principal:  req.Amount,
		AnnualRate: req.AnnualRate,
		Months:     req.Months,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) PayEMI(c echo.Context) error {
	var req payEMIReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	l, err := h.uc.PayEMI(c.Request().Context(), loan.PayEMIInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
