package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/a3tai/syllabus-digest/internal/extract"
)

func TestSummary(t *testing.T) {
	records := []*extract.CourseRecord{
		{
			Course: "calculo",
			Slots:  []extract.ScheduleSlot{{Weekday: 0, StartHour: 13, EndHour: 14, EndMin: 30}},
			Events: []extract.DateEvent{{
				Course:  "calculo",
				Keyword: "examen",
				When:    time.Date(2025, 6, 20, 9, 0, 0, 0, time.Local),
				Context: "El examen final será el 20/06/2025",
			}},
			Evaluation:   []extract.EvaluationItem{{Label: "Examen final", Percentage: 60}},
			Outline:      []extract.OutlineEntry{{Numbering: "1.1", Title: "Introducción"}},
			Bibliography: "Stewart, Cálculo de una variable",
			Contact:      extract.ContactInfo{Name: "Juan Pérez", Email: "jperez@uni.edu"},
			Rules:        extract.NotFound,
		},
	}

	data, err := Summary(records, []string{"roto.pdf: missing %PDF- header"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with the PDF magic header: %q", data[:8])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("output has no PDF trailer")
	}
}

func TestSummaryEmptyBatch(t *testing.T) {
	data, err := Summary(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("empty batch should still render a valid document")
	}
}

func TestSummaryLongBatchPaginates(t *testing.T) {
	// Enough records to overflow one A4 page.
	var records []*extract.CourseRecord
	for i := 0; i < 20; i++ {
		records = append(records, &extract.CourseRecord{
			Course:       "curso",
			Bibliography: strings.Repeat("Referencia bibliográfica. ", 10),
			Contact:      extract.ContactInfo{Name: extract.NotFound, Email: extract.NotFound},
			Rules:        extract.NotFound,
		})
	}

	data, err := Summary(records, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Multiple page objects show up as multiple /Type /Page entries.
	if n := bytes.Count(data, []byte("/Page")); n < 2 {
		t.Errorf("expected a paginated document, found %d page markers", n)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("corto", 10); got != "corto" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("á", 120)
	got := truncate(long, 110)
	if want := strings.Repeat("á", 110) + "..."; got != want {
		t.Errorf("truncate long = %q", got)
	}
}
