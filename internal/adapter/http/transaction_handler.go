package http

import (
	"net/http"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/usecase/transfer"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct{ uc *transfer.Usecase }

func NewTransactionHandler(uc *transfer.Usecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Either field identifies the account; the account number wins when both are set.
type movementReq struct {
	UserID        string          `json:"user_id"        validate:"omitempty,hex32"`
	AccountNumber string          `json:"account_number" validate:"omitempty,accno"`
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0,dec2"`
}

func (r movementReq) ref() account.Ref {
	return account.Ref{UserID: r.UserID, AccountNumber: r.AccountNumber}
}

type transferReq struct {
	FromUserID  string          `json:"from_user_id" validate:"omitempty,hex32"`
	FromAccount string          `json:"from_account" validate:"omitempty,accno"`
	ToUserID    string          `json:"to_user_id"   validate:"omitempty,hex32"`
	ToAccount   string          `json:"to_account"   validate:"omitempty,accno"`
	Amount      decimal.Decimal `json:"amount"       validate:"required,gt=0,dec2"`
}

func (h *TransactionHandler) Deposit(c echo.Context) error {
	var req movementReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	tx, err := h.uc.Deposit(c.Request().Context(), req.ref(), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Withdraw(c echo.Context) error {
	var req movementReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	tx, err := h.uc.Withdraw(c.Request().Context(), req.ref(), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Transfer(c echo.Context) error {
	var req transferReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	res, err := h.uc.Transfer(c.Request().Context(),
		account.Ref{UserID: req.FromUserID, AccountNumber: req.FromAccount},
		account.Ref{UserID: req.ToUserID, AccountNumber: req.ToAccount},
		req.Amount,
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// History accepts an optional ?limit=N.
func (h *TransactionHandler) History(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return writeError(c, ledger.InvalidInput("limit must be an integer"))
	}
	list, err := h.uc.History(c.Request().Context(), c.Param("user_id"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
