package importer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/calc"
	"Formulary/internal/calc/batch"
)

const maxUpload = 10 << 20

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Batch *batch.Handler
}

func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/tools/import", h.Import).Methods(http.MethodPost)
	api.HandleFunc("/tools/batch/xlsx", h.BatchXLSX).Methods(http.MethodPost)
}

// Import solves an uploaded workbook. ?format=xlsx answers with a workbook
// instead of JSON.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		calc.BadRequest(w, "File required")
		return
	}
	defer file.Close()

	items, err := Read(file)
	if err != nil {
		if errors.Is(err, ErrNoCalculatorColumn) || errors.Is(err, batch.ErrEmpty) {
			calc.BadRequest(w, err.Error())
			return
		}
		h.Batch.Log.Debug("unreadable workbook", zap.Error(err))
		calc.BadRequest(w, "Invalid file")
		return
	}
	out, err := batch.Calculate(r.Context(), h.Batch.Registry, items)
	if err != nil {
		if errors.Is(err, batch.ErrTooLarge) {
			calc.BadRequest(w, err.Error())
			return
		}
		calc.WriteError(w, h.Batch.Log, err)
		return
	}
	if r.URL.Query().Get("format") == "xlsx" {
		h.writeWorkbook(w, out)
		return
	}
	calc.WriteJSON(w, http.StatusOK, batch.Summarize(out))
}

func (h *Handler) BatchXLSX(w http.ResponseWriter, r *http.Request) {
	out, ok := h.Batch.Decode(w, r)
	if !ok {
		return
	}
	h.writeWorkbook(w, out)
}

func (h *Handler) writeWorkbook(w http.ResponseWriter, out []batch.Outcome) {
	f, err := Export(out)
	if err != nil {
		calc.WriteError(w, h.Batch.Log, err)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		h.Batch.Log.Error("write workbook", zap.Error(err))
	}
}
