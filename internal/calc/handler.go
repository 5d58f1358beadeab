package calc

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/formula"
)

// Recorder stores a successful calculation made by the request's user.
type Recorder interface {
	Record(r *http.Request, slug string, req formula.Request, res formula.Result) error
}

type Handler struct {
	Registry *Registry
	Log      *zap.Logger
	// Recorder is optional; a failing recorder fails the request.
	Recorder Recorder
}

func NewHandler(reg *Registry, log *zap.Logger) *Handler {
	return &Handler{Registry: reg, Log: log}
}

// WithRecorder returns a copy of h that records into rec.
func (h *Handler) WithRecorder(rec Recorder) *Handler {
	c := *h
	c.Recorder = rec
	return &c
}

// Register mounts the public routes on an /api subrouter.
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/calculators", h.List).Methods(http.MethodGet)
	api.HandleFunc("/calculators/{slug}", h.Describe).Methods(http.MethodGet)
	api.HandleFunc("/tools/{slug}/calc", h.Calc).Methods(http.MethodPost)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Registry.All())
}

func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	d, ok := h.Registry.Lookup(slug)
	if !ok {
		WriteError(w, h.Log, unknown(slug))
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	var req formula.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		BadRequest(w, "Invalid request payload")
		return
	}
	res, err := h.Registry.Solve(slug, req)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	if h.Recorder != nil {
		if err := h.Recorder.Record(r, slug, req, res); err != nil {
			WriteError(w, h.Log, err)
			return
		}
	}
	WriteJSON(w, http.StatusOK, res)
}
