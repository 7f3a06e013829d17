package handler

import (
	"net/http"

	"tableorder/internal/middleware"
	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		//必要な状態が無い -> 303
		if he.IsRedirect() {
			return c.Redirect(he.Status, he.Location)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// セッションIDを取る（TableSession ミドルウェアの後ろでだけ使う）
func getSessionID(c echo.Context) (string, bool) {
	return middleware.SessionIDFrom(c)
}

func sessionMissing(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session missing"})
}
