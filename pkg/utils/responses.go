package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"event-tickets/pkg/errs"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	response := Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, false, message, nil, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, false, message, nil, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, nil, nil)
}

// returns 422 Unprocessable Entity
func ResponseUnprocessable(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnprocessableEntity, false, message, nil, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, message, nil, nil)
}

// ResponseError maps a service error to the matching HTTP response.
// Unrecognized errors are persistence or programming faults and must not
// leak details to the client.
func ResponseError(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ResponseBadRequest(w, "Validation failed", validationErr.Fields)
	case errors.Is(err, errs.ErrNotFound):
		ResponseNotFound(w, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		ResponseUnauthorized(w, err.Error())
	case errors.Is(err, errs.ErrAccountDeactivated):
		ResponseForbidden(w, err.Error())
	case errors.Is(err, errs.ErrPaymentNotConfirmed):
		ResponseUnprocessable(w, err.Error())
	default:
		ResponseInternalError(w, "Internal server error")
	}
}
