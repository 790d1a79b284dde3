package ballotsdk

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   *APIError
	}{
		{
			name:   "error body",
			status: http.StatusConflict,
			body:   `{"error":"already_voted","error_description":"you have already voted on this proposal"}`,
			want:   &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeAlreadyVoted, Description: "you have already voted on this proposal"},
		},
		{
			name:   "validation details",
			status: http.StatusBadRequest,
			body:   `{"error":"validation_failed","error_description":"bad","details":{"title":"is required"}}`,
			want: &APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        ErrorCodeValidationFailed,
				Description: "bad",
				Details:     map[string]string{"title": "is required"},
			},
		},
		{
			name:   "not json",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			want:   &APIError{StatusCode: http.StatusBadGateway, Code: ErrorCodeServerError, Description: "HTTP 502: Bad Gateway"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tc.status}, []byte(tc.body))
			require.Equal(t, tc.want, err)
		})
	}

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestAPIErrorMatchesByCode(t *testing.T) {
	t.Parallel()

	err := error(&APIError{StatusCode: http.StatusConflict, Code: ErrorCodeVotingClosed, Description: "closed"})
	require.ErrorIs(t, err, ErrVotingClosed)
	require.False(t, errors.Is(err, ErrAlreadyVoted))
	require.EqualError(t, err, "voting_closed: closed")
}
