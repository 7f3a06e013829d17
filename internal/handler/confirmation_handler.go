package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

// /order-confirmation
type ConfirmationHandler struct {
	uc  *usecase.ConfirmationUsecase
	log *slog.Logger
}

func NewConfirmationHandler(uc *usecase.ConfirmationUsecase, log *slog.Logger) *ConfirmationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ConfirmationHandler{uc: uc, log: log}
}

func (h *ConfirmationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/order-confirmation", h.view)
	g.DELETE("/order-confirmation", h.close)
	g.GET("/order-confirmation/ws", h.stream)
}

func (h *ConfirmationHandler) view(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.uc.View(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ConfirmationHandler) close(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	h.uc.Close(c.Request().Context(), sessionID)
	return c.NoContent(http.StatusNoContent)
}

// 接続中だけ到着予定を送り続ける
func (h *ConfirmationHandler) stream(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	//upgrade前に注文があるか確認（無ければ 303）
	if _, err := h.uc.Current(c.Request().Context(), sessionID); err != nil {
		return writeError(c, err)
	}

	websocket.Handler(func(conn *websocket.Conn) {
		defer func() {
			_ = conn.Close()
		}()

		ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request().Context()))
		defer cancel()

		//クライアントが閉じたら止める
		go func() {
			_, _ = io.Copy(io.Discard, conn)
			cancel()
		}()

		err := h.uc.Stream(ctx, sessionID, func(out usecase.ConfirmationOutput) error {
			return websocket.JSON.Send(conn, out)
		})
		if err != nil {
			h.log.WarnContext(ctx, "confirmation stream ended", "session_id", sessionID, "error", err)
		}
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}
