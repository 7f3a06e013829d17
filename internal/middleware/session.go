package middleware

import (
	"net/http"
	"strings"
	"time"

	"tableorder/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "table_session"
	CtxSessionIDKey   = "session_id" // string
)

// テーブルセッション用のミドルウェア。
// cookie が無い・壊れている場合は新しいIDを発行する。
// 有効期限はリクエストのたびに SessionTTL だけ延ばす。
func TableSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				sessionID = strings.TrimSpace(ck.Value)
			}

			//uuid以外は捨てて作り直す
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}
			c.SetCookie(newSessionCookie(cfg, sessionID))

			//contextへ保存
			c.Set(CtxSessionIDKey, sessionID)

			return next(c)
		}
	}
}

func newSessionCookie(cfg config.Config, sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cfg.SessionTTL),
	}
}

// SessionIDFrom はミドルウェアが保存したセッションIDを取り出す。
func SessionIDFrom(c echo.Context) (string, bool) {
	v, ok := c.Get(CtxSessionIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
