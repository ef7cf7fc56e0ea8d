package communitysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes used in the error envelope. Each maps onto one HTTP status so
// clients can switch on either.
const (
	ErrorCodeInvalidRequest = "invalid_request" // 400
	ErrorCodeUnauthorized   = "unauthorized"    // 401
	ErrorCodeForbidden      = "forbidden"       // 403
	ErrorCodeNotFound       = "not_found"       // 404
	ErrorCodeConflict       = "conflict"        // 409
	ErrorCodeGone           = "gone"            // 410
	ErrorCodeServerError    = "server_error"    // 500
)

// APIError represents a non-2xx response from the community service. It
// implements the error interface and carries both the HTTP status and the
// service's error envelope.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "conflict")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// parseErrorResponse turns an HTTP error response into a typed *APIError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create a generic error from the status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
