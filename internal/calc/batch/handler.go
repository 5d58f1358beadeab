package batch

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/calc"
)

type Input struct {
	Items []Item `json:"items"`
}

type Handler struct {
	Registry *calc.Registry
	Log      *zap.Logger
}

func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/tools/batch", h.Calc).Methods(http.MethodPost)
}

// Decode reads a batch body and solves it; on failure it has already written the response.
func (h *Handler) Decode(w http.ResponseWriter, r *http.Request) ([]Outcome, bool) {
	var in Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20)).Decode(&in); err != nil {
		calc.BadRequest(w, "Invalid request payload")
		return nil, false
	}
	out, err := Calculate(r.Context(), h.Registry, in.Items)
	switch err {
	case nil:
		return out, true
	case ErrEmpty, ErrTooLarge:
		calc.BadRequest(w, err.Error())
	default:
		calc.WriteError(w, h.Log, err)
	}
	return nil, false
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	out, ok := h.Decode(w, r)
	if !ok {
		return
	}
	s := Summarize(out)
	h.Log.Info("batch solved", zap.Int("count", s.Count), zap.Int("failed", s.Failed))
	calc.WriteJSON(w, http.StatusOK, s)
}
