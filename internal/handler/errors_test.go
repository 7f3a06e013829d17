package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tableorder/internal/middleware"
	"tableorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteError_HTTPError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, writeError(c, usecase.NewHTTPError(http.StatusConflict, "item unavailable")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"item unavailable"}`, rec.Body.String())
}

func TestWriteError_Redirect(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, writeError(c, usecase.NewRedirectError("/table/7")))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/table/7", rec.Header().Get(echo.HeaderLocation))
}

func TestWriteError_Unknown(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, writeError(c, errors.New("db down")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestWriteError_Nil(t *testing.T) {
	c, rec := newContext()

	assert.NoError(t, writeError(c, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSessionID(t *testing.T) {
	c, _ := newContext()

	_, ok := getSessionID(c)
	assert.False(t, ok)

	c.Set(middleware.CtxSessionIDKey, "abc")
	sid, ok := getSessionID(c)
	assert.True(t, ok)
	assert.Equal(t, "abc", sid)
}
