// Package importer reads batches from spreadsheets and writes their results back.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"Formulary/internal/calc/batch"
	"Formulary/internal/formula"
)

var ErrNoCalculatorColumn = errors.New("importer: header row has no \"calculator\" column")

// Read parses the first sheet of an .xlsx workbook. The header row names the
// columns: "calculator" (required), "id" and "mode" (optional), any field name,
// and "<field>_unit" for that field's unit. Every non-blank row is one item.
func Read(r io.Reader) ([]batch.Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("importer: read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, batch.ErrEmpty
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]batch.Item, error) {
	header := make([]string, len(rows[0]))
	calcCol := -1
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if header[i] == "calculator" {
			calcCol = i
		}
	}
	if calcCol < 0 {
		return nil, ErrNoCalculatorColumn
	}

	var items []batch.Item
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		it := batch.Item{
			ID:      fmt.Sprintf("row-%d", n+2),
			Request: formula.Request{Values: map[string]string{}, Units: map[string]string{}},
		}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			switch name := header[i]; {
			case name == "calculator":
				it.Calculator = cell
			case name == "id":
				if cell != "" {
					it.ID = cell
				}
			case name == "mode":
				it.Request.Mode = cell
			case strings.HasSuffix(name, "_unit"):
				if cell != "" {
					it.Request.Units[strings.TrimSuffix(name, "_unit")] = cell
				}
			default:
				if cell != "" {
					it.Request.Values[name] = cell
				}
			}
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, batch.ErrEmpty
	}
	return items, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

const sheet = "Results"

var columns = []any{"calculator", "id", "label", "value", "unit", "formatted", "error", "steps"}

// Export writes one row per outcome to a new workbook.
func Export(out []batch.Outcome) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeResults(f, out); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeResults(f *excelize.File, out []batch.Outcome) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, o := range out {
		row := []any{o.Calculator, o.ID, "", "", "", "", "", ""}
		if o.Result != nil {
			row[2], row[3], row[4], row[5] = o.Result.Label, o.Result.Value, o.Result.Unit, o.Result.Formatted
			row[7] = strings.Join(o.Result.Steps, "\n")
		}
		if o.Error != nil {
			row[6] = o.Error.Message
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "C", "C", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "H", "H", 60)
}
