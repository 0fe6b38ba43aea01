package http

import (
	"net/http"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *registry.Usecase }

func NewAccountHandler(uc *registry.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type registerUserReq struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type createAccountReq struct {
	UserID      string `json:"user_id"      validate:"required,hex32"`
	AccountType string `json:"account_type" validate:"required,oneof=savings current"`
}

func (h *AccountHandler) RegisterUser(c echo.Context) error {
	var req registerUserReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	u, a, err := h.uc.RegisterUser(c.Request().Context(), registry.RegisterUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Credential: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"user": u, "account": a})
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req createAccountReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	a, err := h.uc.CreateAccount(c.Request().Context(), req.UserID, account.Type(req.AccountType))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	a, err := h.uc.FindAccount(c.Request().Context(), account.Ref{AccountNumber: c.Param("account_number")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	list, err := h.uc.ListAccounts(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AccountHandler) CloseAccount(c echo.Context) error {
	out, err := h.uc.CloseAccount(c.Request().Context(), c.Param("account_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
