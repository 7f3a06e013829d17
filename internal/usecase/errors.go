package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
	// リダイレクト先（Status が 303 のときだけ）
	Location string
}

func (e *HTTPError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%d: redirect to %s", e.Status, e.Location)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// NewRedirectError は必要な状態（カート・下書き・注文）が無いときの遷移先
func NewRedirectError(location string) error {
	return &HTTPError{
		Status:   http.StatusSeeOther,
		Message:  "redirect",
		Location: location,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// IsRedirect は NewRedirectError で作ったエラーか
func (e *HTTPError) IsRedirect() bool {
	return e.Location != ""
}

func tableMenuPath(tableID string) string {
	return "/table/" + tableID
}
