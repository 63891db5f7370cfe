package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// HTTPError is a non-2xx response. Its text is "{code} {reason}", the
// form the UI shows inline.
type HTTPError struct {
	StatusCode int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

// newHTTPError keeps the server's own reason phrase when the status line
// carried one.
func newHTTPError(resp *http.Response) *HTTPError {
	text := strings.TrimSpace(resp.Status)
	prefix := strconv.Itoa(resp.StatusCode)
	text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{StatusCode: resp.StatusCode, StatusText: text}
}

// IsHTTPError reports whether err carries a non-2xx response.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}
