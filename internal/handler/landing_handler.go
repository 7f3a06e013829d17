package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET / の案内
type LandingHandler struct {
	serviceName string
}

func NewLandingHandler(serviceName string) *LandingHandler {
	return &LandingHandler{serviceName: serviceName}
}

type LandingResponse struct {
	Service    string   `json:"service"`
	Title      string   `json:"title"`
	HowItWorks []string `json:"how_it_works"`
	DemoTable  string   `json:"demo_table"`
}

func (h *LandingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.index)
	e.GET("/health", h.health)
}

func (h *LandingHandler) index(c echo.Context) error {
	return c.JSON(http.StatusOK, LandingResponse{
		Service: h.serviceName,
		Title:   "QRMenu",
		HowItWorks: []string{
			"Scan the QR code on your table",
			"Browse the menu and add items to your cart",
			"Pay from your phone and track your order",
		},
		DemoTable: "/table/1",
	})
}

func (h *LandingHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
