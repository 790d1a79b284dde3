package ballotsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeNotFound         = "not_found"
	ErrorCodeAlreadyVoted     = "already_voted"
	ErrorCodeVotingClosed     = "voting_closed"
	ErrorCodeUnauthenticated  = "unauthenticated"
	ErrorCodeValidationFailed = "validation_failed"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeRateLimited      = "rate_limit_exceeded"
	ErrorCodeServerError      = "server_error"
)

// APIError is a non-2xx response from the ballot API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Details     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by code, so callers can write
// errors.Is(err, ballotsdk.ErrAlreadyVoted).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons. Only Code is compared.
var (
	ErrNotFound         = &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound}
	ErrAlreadyVoted     = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeAlreadyVoted}
	ErrVotingClosed     = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeVotingClosed}
	ErrUnauthenticated  = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeUnauthenticated}
	ErrValidationFailed = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeValidationFailed}
	ErrForbidden        = &APIError{StatusCode: http.StatusForbidden, Code: ErrorCodeForbidden}
	ErrRateLimited      = &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimited}
)

// parseErrorResponse turns an error body into an *APIError, falling back to
// the status text when the body is not an ErrorResponse.
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
			Details:     errResp.Details,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
