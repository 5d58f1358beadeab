package calc

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"Formulary/internal/formula"
)

type recorderFunc func(r *http.Request, slug string, req formula.Request, res formula.Result) error

func (f recorderFunc) Record(r *http.Request, slug string, req formula.Request, res formula.Result) error {
	return f(r, slug, req, res)
}

func serve(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	h.Register(router.PathPrefix("/api").Subrouter())
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerList(t *testing.T) {
	h := NewHandler(Default, zaptest.NewLogger(t))
	rec := serve(t, h, http.MethodGet, "/api/calculators", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var defs []formula.Definition
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&defs))
	assert.Len(t, defs, len(Default.All()))

	rec = serve(t, h, http.MethodGet, "/api/calculators/diamond", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"diamond"`)
}

func TestHandlerCalc(t *testing.T) {
	h := NewHandler(Default, zaptest.NewLogger(t))
	rec := serve(t, h, http.MethodPost, "/api/tools/force/calc", `{"values":{"mass":"10","acceleration":"5"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var res formula.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 50.0, res.Value)
	assert.NotEmpty(t, res.Steps)
}

func TestHandlerErrors(t *testing.T) {
	h := NewHandler(Default, zaptest.NewLogger(t))
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"validation", "/api/tools/diamond/calc", `{"values":{"sum":"1","product":"10"}}`, http.StatusUnprocessableEntity, "no_real_solution"},
		{"bad field", "/api/tools/force/calc", `{"values":{"mass":"ten","acceleration":"5"}}`, http.StatusUnprocessableEntity, "invalid_number"},
		{"bad json", "/api/tools/force/calc", `{"values":`, http.StatusBadRequest, "bad_request"},
		{"unknown", "/api/tools/warp/calc", `{}`, http.StatusNotFound, "unknown_calculator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandlerRecorder(t *testing.T) {
	var got []string
	h := NewHandler(Default, zaptest.NewLogger(t)).WithRecorder(recorderFunc(func(_ *http.Request, slug string, _ formula.Request, res formula.Result) error {
		got = append(got, slug+"="+res.Formatted)
		return nil
	}))
	rec := serve(t, h, http.MethodPost, "/api/tools/lcm/calc", `{"values":{"numbers":"4 6"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	// failed calculations are not recorded
	serve(t, h, http.MethodPost, "/api/tools/lcm/calc", `{"values":{"numbers":""}}`)
	assert.Equal(t, []string{"lcm=12"}, got)

	failing := h.WithRecorder(recorderFunc(func(*http.Request, string, formula.Request, formula.Result) error {
		return errors.New("disk full")
	}))
	rec = serve(t, failing, http.MethodPost, "/api/tools/lcm/calc", `{"values":{"numbers":"4 6"}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlerOverflowIsDomainError(t *testing.T) {
	h := NewHandler(Default, zaptest.NewLogger(t))
	tests := []struct {
		slug, body, field string
	}{
		{"diamond", `{"values":{"sum":"1e200","product":"0"}}`, "sum"},
		{"arithmetic-sequence", `{"values":{"first":"1e308","difference":"1e308","n":"3"}}`, "n"},
		{"percentage", `{"mode":"percentage_of","values":{"value1":"1e308","value2":"1e-308"}}`, "percentage"},
		{"db-gain", `{"mode":"db-from-power","values":{"input_power":"1e-300","output_power":"1e300"}}`, "gain"},
		{"capacitance", `{"values":{"charge":"1e300","voltage":"1"},"units":{"charge":"C","voltage":"V","capacitance":"pF"}}`, "capacitance"},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			rec := serve(t, h, http.MethodPost, "/api/tools/"+tt.slug+"/calc", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, string(formula.KindDomain), body.Error)
			assert.Equal(t, tt.field, body.Field)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]float64{"v": math.Inf(1)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal","message":"Internal server error"}`, rec.Body.String())
}
