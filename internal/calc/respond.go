package calc

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"Formulary/internal/formula"
)

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// WriteJSON encodes v before writing the status, so an unencodable value
// becomes a 500 instead of an empty body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(ErrorBody{Error: "internal", Message: "Internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "bad_request", Message: message})
}

// WriteError maps err to a status: 422 for calculation errors, 404 for an
// unknown calculator and 500 for anything else, which is logged.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	if fe, ok := formula.AsError(err); ok {
		log.Debug("calculation rejected", zap.String("kind", string(fe.Kind)), zap.String("field", fe.Field), zap.String("message", fe.Message))
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorBody{Error: string(fe.Kind), Field: fe.Field, Message: fe.Message})
		return
	}
	if errors.Is(err, ErrUnknownCalculator) {
		WriteJSON(w, http.StatusNotFound, ErrorBody{Error: "unknown_calculator", Message: err.Error()})
		return
	}
	log.Error("request failed", zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: "internal", Message: "Internal server error"})
}
