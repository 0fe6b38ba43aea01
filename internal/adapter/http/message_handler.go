package http

import (
	"net/http"

	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/domain/notification"
	"bank-ledger/pkg/id"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct{ repo notification.MessageRepository }

func NewMessageHandler(repo notification.MessageRepository) *MessageHandler {
	return &MessageHandler{repo: repo}
}

func (h *MessageHandler) List(c echo.Context) error {
	userID := c.Param("user_id")
	if !id.IsID32(userID) {
		return writeError(c, ledger.InvalidInput("user id must be 32 lowercase hex characters"))
	}
	list, err := h.repo.ListByUserID(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
