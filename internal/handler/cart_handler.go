package handler

import (
	"net/http"

	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart
type CartHandler struct {
	cartUC  *usecase.CartUsecase
	orderUC *usecase.OrderUsecase
}

func NewCartHandler(cartUC *usecase.CartUsecase, orderUC *usecase.OrderUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC, orderUC: orderUC}
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName        string `json:"customer_name"`
	SpecialInstructions string `json:"special_instructions"`
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.get)
	g.POST("/cart/items/:itemId/decrement", h.decrement)
	g.PATCH("/cart/items/:itemId", h.update)
	g.DELETE("/cart/items/:itemId", h.delete)
	g.POST("/cart/checkout", h.checkout)
}

func (h *CartHandler) get(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.cartUC.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) decrement(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.cartUC.RemoveOne(c.Request().Context(), sessionID, c.Param("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.cartUC.SetQuantity(c.Request().Context(), sessionID, c.Param("itemId"), *req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) delete(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.cartUC.DeleteItem(c.Request().Context(), sessionID, c.Param("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 注文下書きを作って支払い画面へ
func (h *CartHandler) checkout(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.BuildDraft(c.Request().Context(), sessionID, usecase.CheckoutInput{
		CustomerName:        req.CustomerName,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/payment")
	return c.JSON(http.StatusCreated, out)
}
