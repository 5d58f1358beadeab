package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/calc"
)

type Handler struct {
	Registry *calc.Registry
	Log      *zap.Logger
}

func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/tools/{slug}/report", h.Generate).Methods(http.MethodPost)
}

// Generate solves the posted request and answers with the PDF report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	var in Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&in); err != nil {
		calc.BadRequest(w, "Invalid request payload")
		return
	}
	res, err := h.Registry.Solve(slug, in.Request)
	if err != nil {
		calc.WriteError(w, h.Log, err)
		return
	}
	d, _ := h.Registry.Lookup(slug)
	in.Calculator, in.Fields, in.Result = d.Title, d.Fields, res

	var buf bytes.Buffer
	if err := Render(&buf, in); err != nil {
		calc.WriteError(w, h.Log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slug+`-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}
