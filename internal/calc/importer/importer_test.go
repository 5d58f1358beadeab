package importer

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"Formulary/internal/calc"
	"Formulary/internal/calc/batch"
	"Formulary/internal/formula"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

var sample = [][]any{
	{"Calculator", "mode", "charge", "charge_unit", "voltage", "numbers", "sum", "product"},
	{"capacitance", "", 50, "μC", 5},
	{},
	{"gcf", "", "", "", "", "12 18 24"},
	{"diamond", "", "", "", "", "", 1, 10},
}

func TestRead(t *testing.T) {
	items, err := Read(workbook(t, sample))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "row-2", items[0].ID)
	assert.Equal(t, "capacitance", items[0].Calculator)
	assert.Equal(t, "50", items[0].Request.Values["charge"])
	assert.Equal(t, "μC", items[0].Request.Units["charge"])
	assert.Equal(t, "row-4", items[1].ID)
	assert.Equal(t, "12 18 24", items[1].Request.Values["numbers"])
	assert.Equal(t, formula.Request{Values: map[string]string{"sum": "1", "product": "10"}, Units: map[string]string{}}, items[2].Request)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(workbook(t, [][]any{{"slug", "a"}, {"force", 1}}))
	assert.ErrorIs(t, err, ErrNoCalculatorColumn)
	_, err = Read(workbook(t, [][]any{{"calculator"}}))
	assert.ErrorIs(t, err, batch.ErrEmpty)
	_, err = Read(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	items, err := Read(workbook(t, sample))
	require.NoError(t, err)
	out, err := batch.Calculate(context.Background(), calc.Default, items)
	require.NoError(t, err)

	f, err := Export(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"calculator", "id", "label", "value", "unit", "formatted", "error", "steps"}, rows[0])
	assert.Equal(t, "capacitance", rows[1][0])
	assert.Equal(t, "row-2", rows[1][1])
	assert.Equal(t, "μF", rows[1][4])
	assert.Equal(t, "6", rows[2][5])
	assert.Contains(t, rows[3][6], "No real numbers")

	width, err := f.GetColWidth(sheet, "H")
	require.NoError(t, err)
	assert.Equal(t, 60.0, width)
}

func router(t *testing.T) *mux.Router {
	h := &Handler{Batch: &batch.Handler{Registry: calc.Default, Log: zaptest.NewLogger(t)}}
	r := mux.NewRouter()
	h.Register(r.PathPrefix("/api").Subrouter())
	return r
}

func upload(t *testing.T, path string, file *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "batch.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(file.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, req)
	return rec
}

func TestImportHandler(t *testing.T) {
	rec := upload(t, "/api/tools/import", workbook(t, sample))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed":1`)

	rec = upload(t, "/api/tools/import?format=xlsx", workbook(t, sample))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxType, rec.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	rec = upload(t, "/api/tools/import", workbook(t, [][]any{{"x"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchXLSX(t *testing.T) {
	body := `{"items":[{"calculator":"lcm","request":{"values":{"numbers":"4 6"}}}]}`
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tools/batch/xlsx", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "12", v)
}
