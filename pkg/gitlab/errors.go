package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is returned for any non-2xx response from the API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by an APIError in err's chain,
// or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     resp.Request.Method,
		Path:       resp.Request.URL.Path,
	}

	// GitLab answers {"message": ...} or {"error": ...}; the message can be a
	// string or an object of field errors.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	switch {
	case len(payload.Message) > 0:
		var s string
		if json.Unmarshal(payload.Message, &s) == nil {
			apiErr.Message = s
		} else {
			apiErr.Message = string(payload.Message)
		}
	case payload.Error != "":
		apiErr.Message = payload.Error
	}
	return apiErr
}
