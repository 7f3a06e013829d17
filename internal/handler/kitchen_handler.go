package handler

import (
	"net/http"

	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /kitchen（厨房側の簡易窓口）
type KitchenHandler struct {
	uc *usecase.KitchenUsecase
}

func NewKitchenHandler(uc *usecase.KitchenUsecase) *KitchenHandler {
	return &KitchenHandler{uc: uc}
}

type KitchenUpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *KitchenHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/kitchen")
	g.GET("/orders", h.list)
	g.PATCH("/orders/:id/status", h.updateStatus)
}

func (h *KitchenHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) updateStatus(c echo.Context) error {
	var req KitchenUpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), usecase.KitchenUpdateStatusInput{Status: req.Status}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
