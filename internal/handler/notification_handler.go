package handler

import (
	"net/http"

	"tableorder/internal/infra/notify"

	"github.com/labstack/echo/v4"
)

// GET /notifications（溜まっている通知を返して空にする）
type NotificationHandler struct {
	inbox *notify.Inbox
}

func NewNotificationHandler(inbox *notify.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.drain)
}

func (h *NotificationHandler) drain(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}
	return c.JSON(http.StatusOK, h.inbox.Drain(c.Request().Context(), sessionID))
}
