// Package history keeps the calculations made by signed-in users.
package history

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/auth"
	"Formulary/internal/calc"
	"Formulary/internal/formula"
	"Formulary/internal/repo"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Handler struct {
	Repo repo.Repository
	Log  *zap.Logger
	// Now is overridden in tests.
	Now func() time.Time
}

func NewHandler(r repo.Repository, log *zap.Logger) *Handler {
	return &Handler{Repo: r, Log: log, Now: time.Now}
}

// Record saves a calculation for the authenticated user. It implements calc.Recorder.
func (h *Handler) Record(r *http.Request, slug string, req formula.Request, res formula.Result) error {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return errors.New("history: request has no user")
	}
	c := &repo.Calculation{
		UserID:     userID,
		Calculator: slug,
		Request:    req,
		Result:     res,
		CreatedAt:  h.Now().UTC(),
	}
	if err := h.Repo.SaveCalculation(r.Context(), c); err != nil {
		return err
	}
	h.Log.Debug("calculation recorded", zap.Int("user_id", userID), zap.String("calculator", slug), zap.Int64("id", c.ID))
	return nil
}

// Register mounts the history routes and a recording calculator endpoint on a
// subrouter that is already behind auth.Middleware.
func (h *Handler) Register(user *mux.Router, calcs *calc.Handler) {
	user.HandleFunc("/history", h.List).Methods(http.MethodGet)
	user.HandleFunc("/history/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	user.HandleFunc("/history/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	user.HandleFunc("/tools/{slug}/calc", calcs.WithRecorder(h).Calc).Methods(http.MethodPost)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		calc.WriteJSON(w, http.StatusUnauthorized, calc.ErrorBody{Error: "unauthorized", Message: "Please log in"})
		return
	}
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			calc.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}
	list, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		calc.WriteError(w, h.Log, err)
		return
	}
	calc.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	c, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		calc.WriteError(w, h.Log, err)
		return
	}
	calc.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	err := h.Repo.DeleteCalculation(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		calc.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (int, int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		calc.WriteJSON(w, http.StatusUnauthorized, calc.ErrorBody{Error: "unauthorized", Message: "Please log in"})
		return 0, 0, false
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		calc.BadRequest(w, "invalid id")
		return 0, 0, false
	}
	return userID, id, true
}

func notFound(w http.ResponseWriter) {
	calc.WriteJSON(w, http.StatusNotFound, calc.ErrorBody{Error: "not_found", Message: "Calculation not found"})
}
