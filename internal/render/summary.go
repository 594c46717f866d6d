// Package render lays out the unified course summary as a PDF document.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/a3tai/syllabus-digest/internal/extract"
)

const (
	lineHeight    = 14.0
	titleSize     = 16.0
	headingSize   = 12.0
	bodySize      = 10.0
	sectionGap    = 6.0
	maxContextLen = 110

	// pageBreakThreshold is the vertical space below which the writer
	// starts a new page instead of writing into the bottom margin.
	pageBreakThreshold = 80.0
)

type summaryWriter struct {
	pdf          *gofpdf.Fpdf
	translate    func(string) string
	pageHeight   float64
	bottomMargin float64
}

// ensureSpace starts a new page when the remaining vertical space runs
// under the break threshold.
func (w *summaryWriter) ensureSpace() {
	if w.pageHeight-w.bottomMargin-w.pdf.GetY() < pageBreakThreshold {
		w.pdf.AddPage()
	}
}

func (w *summaryWriter) line(style string, size float64, text string) {
	w.ensureSpace()
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.MultiCell(0, lineHeight, w.translate(text), "", "L", false)
}

func (w *summaryWriter) heading(text string) {
	w.pdf.Ln(sectionGap)
	w.line("B", headingSize, text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Summary renders all course records plus the batch diagnostics into one
// PDF byte stream.
func Summary(records []*extract.CourseRecord, diagnostics []string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Resumen de cursos", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	w := &summaryWriter{
		pdf:          pdf,
		translate:    pdf.UnicodeTranslatorFromDescriptor(""),
		pageHeight:   pageHeight,
		bottomMargin: bottom,
	}

	w.line("B", titleSize, "Resumen unificado de cursos")

	for _, record := range records {
		w.pdf.Ln(sectionGap * 2)
		w.line("B", titleSize, record.Course)

		if len(record.Slots) > 0 {
			w.heading("Horario")
			for _, slot := range record.Slots {
				w.line("", bodySize, slot.String())
			}
		}

		if len(record.Events) > 0 {
			w.heading("Fechas importantes")
			for _, event := range record.Events {
				w.line("", bodySize, fmt.Sprintf("%s - %s: %s",
					event.When.Format("02/01/2006 15:04"), event.Keyword, truncate(event.Context, maxContextLen)))
			}
		}

		if len(record.Evaluation) > 0 {
			w.heading("Evaluación")
			for _, item := range record.Evaluation {
				w.line("", bodySize, fmt.Sprintf("%s: %d%%", item.Label, item.Percentage))
			}
		}

		if len(record.Outline) > 0 {
			w.heading("Temario")
			for _, entry := range record.Outline {
				w.line("", bodySize, fmt.Sprintf("%s %s", entry.Numbering, entry.Title))
			}
		} else if record.OutlineRaw != "" && record.OutlineRaw != extract.NotFound {
			w.heading("Temario")
			w.line("", bodySize, record.OutlineRaw)
		}

		if record.Bibliography != extract.NotFound {
			w.heading("Bibliografía")
			w.line("", bodySize, record.Bibliography)
		}

		w.heading("Contacto")
		w.line("", bodySize, fmt.Sprintf("Nombre: %s", record.Contact.Name))
		w.line("", bodySize, fmt.Sprintf("Email: %s", record.Contact.Email))

		if record.Rules != extract.NotFound {
			w.heading("Reglamento")
			w.line("", bodySize, record.Rules)
		}
	}

	if len(diagnostics) > 0 {
		w.heading("Archivos con errores")
		for _, diagnostic := range diagnostics {
			w.line("", bodySize, diagnostic)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
