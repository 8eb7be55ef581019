package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeError maps an error to a coded JSON payload and an HTTP status. The
// core distributor's sentinels are lifted to codes here so callers never see
// bare error strings.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		switch {
		case stderrors.Is(err, flex.ErrInfeasible):
			code = errors.ErrCodeInfeasible
		case stderrors.Is(err, flex.ErrInvalidSpec):
			code = errors.ErrCodeInvalidRegion
		default:
			code = errors.ErrCodeInvalidProfile
		}
	}

	writeJSON(w, statusFor(code), errorPayload{Error: errorBody{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInfeasible:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
