package handler

import (
	"net/http"

	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /table/:tableId（QRコードの遷移先）
type MenuHandler struct {
	menuUC *usecase.MenuUsecase
	cartUC *usecase.CartUsecase
}

// DI
func NewMenuHandler(menuUC *usecase.MenuUsecase, cartUC *usecase.CartUsecase) *MenuHandler {
	return &MenuHandler{menuUC: menuUC, cartUC: cartUC}
}

type AddCartItemRequest struct {
	ItemID string `json:"item_id"`
}

func (h *MenuHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/table/", h.noTable)
	g.GET("/table/:tableId", h.menu)
	g.POST("/table/:tableId/cart/items", h.addItem)
}

func (h *MenuHandler) noTable(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *MenuHandler) menu(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	out, err := h.menuUC.TableMenu(c.Request().Context(), sessionID, c.Param("tableId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) addItem(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return sessionMissing(c)
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.cartUC.AddItem(c.Request().Context(), sessionID, c.Param("tableId"), req.ItemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
