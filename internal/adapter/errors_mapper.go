package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	kind := ErrRequestFailed
	if status == http.StatusUnauthorized {
		kind = ErrAuthExpired
	}

	return &RequestError{
		StatusCode: status,
		Message:    extractErrorMessage(status, resp.Body()),
		kind:       kind,
		status:     statusSentinel(status),
	}
}

func newTransportError(err error) error {
	return &RequestError{
		StatusCode: 0,
		Message:    "network error: " + err.Error(),
		kind:       ErrRequestFailed,
		cause:      err,
	}
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	default:
		return nil
	}
}

// extractErrorMessage picks, in order: the JSON "message" field, the JSON
// "error" field, the raw body text, the status text.
func extractErrorMessage(status int, body []byte) string {
	text := strings.TrimSpace(string(body))

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := parsed["error"].(string); ok && msg != "" {
			return msg
		}
	}

	if text != "" {
		return text
	}
	if statusText := http.StatusText(status); statusText != "" {
		return statusText
	}
	return fmt.Sprintf("http %d", status)
}
