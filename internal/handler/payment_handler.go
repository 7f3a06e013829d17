package handler

import (
	"net/http"

	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /payment
type PaymentHandler struct {
	orderUC   *usecase.OrderUsecase
	paymentUC *usecase.PaymentUsecase
}

func NewPaymentHandler(orderUC *usecase.OrderUsecase, paymentUC *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{orderUC: orderUC, paymentUC: paymentUC}
}

type StartPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/payment", h.summary)
	g.POST("/payment", h.start)
	g.GET("/payment/status", h.status)
}

func (h *PaymentHandler) summary(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.orderUC.CurrentDraft(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 決済開始（完了は非同期。/payment/status で確認する）
func (h *PaymentHandler) start(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	var req StartPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.paymentUC.Start(c.Request().Context(), sessionID, req.PaymentMethod)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, out)
}

func (h *PaymentHandler) status(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}
	return c.JSON(http.StatusOK, h.paymentUC.Status(c.Request().Context(), sessionID))
}
