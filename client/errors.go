package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	// ErrAuthentication indicates the token exchange failed.
	ErrAuthentication = errors.New("authentication failed")

	// ErrTransfer indicates the file download failed.
	ErrTransfer = errors.New("download failed")
)

// APIError is a typed error for a non-200 response, with the HTTP status code
// and an excerpt of the response body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP %d", e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		fmt.Fprintf(&b, ": %s", body)
	} else if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if hint := friendlyHint(e.StatusCode, e.Code); hint != "" {
		fmt.Fprintf(&b, " (%s)", hint)
	}
	return b.String()
}

// friendlyHint points the operator at the setting most likely to be wrong.
func friendlyHint(statusCode int, code string) string {
	switch code {
	case "invalid_client", "unauthorized_client":
		return "check CLIENT_ID and CLIENT_SECRET"
	case "invalid_request":
		return "check TENANT_ID"
	case "invalid_scope":
		return "check GRAPH_API_URL"
	case "itemNotFound":
		return "check DRIVE_PATH"
	}

	switch statusCode {
	case http.StatusNotFound:
		return "check GRAPH_USER_UPN and DRIVE_PATH"
	case http.StatusForbidden:
		return "the app registration needs the Files.Read.All application permission"
	case http.StatusTooManyRequests:
		return "throttled by Microsoft Graph; try again later"
	default:
		return ""
	}
}

// parseAPIError builds an APIError, keeping at most limit bytes of body
// (limit <= 0 keeps everything).
func parseAPIError(statusCode int, body []byte, limit int) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: excerpt(body, limit)}

	var graphErr ErrorResponse
	if json.Unmarshal(body, &graphErr) == nil && graphErr.Error.Code != "" {
		apiErr.Code = graphErr.Error.Code
		apiErr.Message = graphErr.Error.Message
	}
	return apiErr
}

func excerpt(body []byte, limit int) string {
	if limit <= 0 || len(body) <= limit {
		return string(body)
	}
	// Don't split a multi-byte rune.
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "…"
}

// PartialDownloadError reports a failure after the destination file was
// opened. The partially written file is left in place.
type PartialDownloadError struct {
	Path    string
	Written int64
	Err     error
}

func (e *PartialDownloadError) Error() string {
	return fmt.Sprintf("interrupted after %d bytes, partial file left at %s: %v", e.Written, e.Path, e.Err)
}

func (e *PartialDownloadError) Unwrap() error { return e.Err }
