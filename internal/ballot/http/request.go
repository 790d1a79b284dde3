package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst and validates it. On failure the
// error response has already been written and false is returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ballotsdk.ErrorCodeValidationFailed, "request body must be valid JSON")
		return false
	}

	err := validate.Struct(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, ballotsdk.ErrorCodeValidationFailed, err.Error())
		return false
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	httpx.WriteJSON(w, http.StatusBadRequest, ballotsdk.ErrorResponse{
		Error:            ballotsdk.ErrorCodeValidationFailed,
		ErrorDescription: "validation failed for some fields",
		Details:          details,
	})
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " long"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// pathID parses a positive integer path value. On failure a 404 has been
// written, since no resource can have that id.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, ballotsdk.ErrorCodeNotFound, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, ballotsdk.ErrorResponse{Error: code, ErrorDescription: desc})
}

// writeServiceError maps service errors to responses. Anything unrecognised
// is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, ballotsdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, ballotsdk.ErrorCodeAlreadyVoted, err.Error())
	case errors.Is(err, service.ErrVotingClosed):
		writeError(w, http.StatusConflict, ballotsdk.ErrorCodeVotingClosed, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, ballotsdk.ErrorCodeUnauthenticated, err.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, ballotsdk.ErrorCodeValidationFailed, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, ballotsdk.ErrorCodeServerError, "internal server error")
	}
}
