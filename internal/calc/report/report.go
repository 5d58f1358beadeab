// Package report renders a solved calculation as a PDF.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"Formulary/internal/formula"
)

type Input struct {
	Title      string          `json:"title"`
	Project    string          `json:"project"`
	Author     string          `json:"author"`
	Notes      string          `json:"notes"`
	Calculator string          `json:"-"`
	Fields     []formula.Field `json:"-"`
	Request    formula.Request `json:"request"`
	Result     formula.Result  `json:"-"`
	Date       time.Time       `json:"-"`
}

// The core PDF fonts only cover cp1252.
var glyphs = strings.NewReplacer(
	"μ", "µ",
	"Ω", "Ohm",
	"λ", "lambda",
	"√", "sqrt",
	"−", "-",
	"⁻¹", "^-1",
	"≥", ">=",
	"≤", "<=",
	"₀", "0", "₁", "1", "₂", "2", "₃", "3", "₄", "4",
	"₅", "5", "₆", "6", "₇", "7", "₈", "8", "₉", "9",
	"ₙ", "n",
	"ⁿ", "^n",
)

// Transliterate replaces glyphs the core fonts cannot draw.
func Transliterate(s string) string {
	return glyphs.Replace(s)
}

// Render writes an A4 report of in to w.
func Render(w io.Writer, in Input) error {
	if in.Title == "" {
		in.Title = "Calculation Report"
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(Transliterate(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(in.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if in.Project != "" {
		pdf.Cell(0, 6, text("Project: "+in.Project))
		pdf.Ln(6)
	}
	if in.Author != "" {
		pdf.Cell(0, 6, text("Author: "+in.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", in.Date.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text(in.Calculator))
	pdf.Ln(10)

	section(pdf, "Inputs")
	pdf.SetFont("Helvetica", "", 11)
	if in.Request.Mode != "" {
		row(pdf, text, "Mode", in.Request.Mode)
	}
	for _, name := range inputOrder(in) {
		v := in.Request.Raw(name)
		if v == "" {
			continue
		}
		label := name
		for _, f := range in.Fields {
			if f.Name == name {
				label = f.Label
			}
		}
		if u := in.Request.Unit(name, ""); u != "" {
			v += " " + u
		}
		row(pdf, text, label, v)
	}
	pdf.Ln(4)

	section(pdf, "Result")
	pdf.SetFont("Helvetica", "", 11)
	for _, o := range in.Result.Outputs {
		v := o.Formatted
		if o.Unit != "" {
			v += " " + o.Unit
		}
		row(pdf, text, o.Label, v)
	}
	pdf.Ln(4)

	if len(in.Result.Steps) > 0 {
		section(pdf, "Steps")
		pdf.SetFont("Courier", "", 10)
		for _, s := range in.Result.Steps {
			pdf.MultiCell(0, 5, text(s), "", "L", false)
		}
		pdf.Ln(4)
	}

	notes := strings.TrimSpace(strings.Join([]string{in.Result.Notes, in.Notes}, "\n"))
	if notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, text(notes), "", "L", false)
	}
	return pdf.Output(w)
}

// inputOrder lists request values in field order, then any others by name.
func inputOrder(in Input) []string {
	seen := map[string]bool{}
	var names []string
	for _, f := range in.Fields {
		if _, ok := in.Request.Values[f.Name]; ok {
			names = append(names, f.Name)
			seen[f.Name] = true
		}
	}
	var rest []string
	for k := range in.Request.Values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
}

func row(pdf *gofpdf.Fpdf, text func(string) string, label, value string) {
	pdf.CellFormat(70, 6, text(label), "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, text(value), "1", 1, "L", false, 0, "")
}
