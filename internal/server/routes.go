package server

import (
	"tableorder/internal/config"
	"tableorder/internal/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes はお客さん向け（セッションあり）と厨房向けに分けて登録する。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Landing.RegisterRoutes(e)

	g := e.Group("")
	g.Use(middleware.TableSession(cfg))

	h.Menu.RegisterRoutes(g)
	h.Cart.RegisterRoutes(g)
	h.Payment.RegisterRoutes(g)
	h.Confirmation.RegisterRoutes(g)
	h.Notification.RegisterRoutes(g)

	h.Kitchen.RegisterRoutes(e)
}
