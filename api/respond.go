package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 2 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data wrapped in a success envelope with status 200
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatus(w, http.StatusOK, data)
}

// WriteStatus writes data wrapped in a success envelope with the given status
func (r Responder) WriteStatus(w http.ResponseWriter, status int, data any) {
	r.write(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope carrying only a message
func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.write(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func (r Responder) write(w http.ResponseWriter, status int, body any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.write(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
			Status:  "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Message: apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
		if apiErr.StatusCode >= http.StatusInternalServerError {
			r.logger.Error().Err(apiErr.Cause).Str("error", apiErr.Error()).Msg("request failed")
		}
	}

	r.write(w, apiErr.StatusCode, response)
}

// WriteValidationError writes a standardized validation error response
func (r Responder) WriteValidationError(w http.ResponseWriter, field string, message string) {
	r.write(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation error",
		Message: message,
		Field:   field,
		Status:  "validation_error",
	})
}

// readJSON decodes a size-limited JSON body into dst
func readJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewBadRequestError("failed to read request body")
	}
	if len(body) == 0 {
		return errs.Malformed("empty")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

// wrapTransactionError is wrapDatabaseError for writes spanning several statements.
// Failures with no more specific classification are reported as a failed transaction.
func wrapTransactionError(operation, entity string, cause error) error {
	apiErr := errs.NewDatabaseError(operation, entity, cause)
	if errors.Is(apiErr, errs.ErrDatabaseQuery) {
		return errs.NewTransactionFailedError(operation, cause)
	}
	return apiErr
}
