// internal/controller/response.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
)

// envelope is the body of every successful response.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorBody struct {
	Message string                 `json:"message"`
	Context []appErrors.FieldError `json:"context,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, envelope{Message: message, Data: data})
}

// WriteError maps typed errors to status codes. Anything unrecognized is
// logged and reported as a 500 without details.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		verr         *appErrors.ValidationError
		badRequest   *appErrors.BadRequestError
		unauthorized *appErrors.UnauthorizedError
		forbidden    *appErrors.ForbiddenError
		notFound     *appErrors.NotFoundError
		conflict     *appErrors.ConflictError
	)

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Message: "Validation Error", Context: verr.Fields})
	case errors.As(err, &badRequest):
		WriteJSON(w, http.StatusBadRequest, errorBody{Message: badRequest.Message})
	case errors.As(err, &unauthorized):
		WriteJSON(w, http.StatusUnauthorized, errorBody{Message: "Unauthorized Error"})
	case errors.As(err, &forbidden):
		WriteJSON(w, http.StatusForbidden, errorBody{Message: "Forbidden"})
	case errors.As(err, &notFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Message: notFound.Error()})
	case errors.As(err, &conflict):
		WriteJSON(w, http.StatusConflict, errorBody{Message: conflict.Message})
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		WriteJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal Server Error"})
	}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return appErrors.NewBadRequest("invalid body")
	}
	return nil
}
