package digest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a3tai/syllabus-digest/internal/extract"
	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// fakeReader serves canned documents keyed by filename, so the pipeline
// can be exercised without real PDF bytes.
type fakeReader struct {
	docs     map[string]*extract.Document
	warnings map[string][]string
}

func (f *fakeReader) Read(filename string, data []byte) (*extract.Document, []string, error) {
	doc, ok := f.docs[filename]
	if !ok {
		return nil, f.warnings[filename], errors.New("unreadable file")
	}
	return doc, f.warnings[filename], nil
}

func textDocument(course, text string) *extract.Document {
	return &extract.Document{Course: course, Pages: []extract.Page{{Text: text}}}
}

func TestProcessMixedBatch(t *testing.T) {
	reader := &fakeReader{
		docs: map[string]*extract.Document{
			"calculo.pdf": textDocument("calculo",
				"Horario: Lunes 13:00-14:30\n"+
					"El examen final será el 20/06/2025.\n"+
					"Profesor: Juan Pérez\nCorreo: jperez@uni.edu\n"),
		},
	}
	p := NewProcessorWithReader(reader, 0)
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	result := p.Process([]Upload{
		{Filename: "calculo.pdf", Data: []byte("x")},
		{Filename: "roto.pdf", Data: []byte("x")},
	}, today)

	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	record := result.Records[0]
	if record.Course != "calculo" {
		t.Errorf("course = %q", record.Course)
	}
	if len(record.Slots) != 1 || record.Slots[0].Weekday != lexicon.Monday {
		t.Errorf("slots = %v", record.Slots)
	}
	if len(record.Events) != 1 || record.Events[0].Keyword != "examen" {
		t.Errorf("events = %v", record.Events)
	}
	if record.Contact.Email != "jperez@uni.edu" {
		t.Errorf("email = %q", record.Contact.Email)
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one entry", result.Diagnostics)
	}
	if !strings.HasPrefix(result.Diagnostics[0], "roto.pdf: ") {
		t.Errorf("diagnostic = %q, want filename prefix", result.Diagnostics[0])
	}
}

func TestProcessWarningsBecomeDiagnostics(t *testing.T) {
	reader := &fakeReader{
		docs: map[string]*extract.Document{
			"curso.pdf": textDocument("curso", "Temario del curso"),
		},
		warnings: map[string][]string{
			"curso.pdf": {"truncated: missing %%EOF marker"},
		},
	}
	p := NewProcessorWithReader(reader, 0)

	result := p.Process([]Upload{{Filename: "curso.pdf", Data: []byte("x")}}, time.Now())
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	if len(result.Diagnostics) != 1 || !strings.HasPrefix(result.Diagnostics[0], "curso.pdf: truncated") {
		t.Errorf("diagnostics = %v", result.Diagnostics)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	p := NewProcessorWithReader(&fakeReader{}, 0)

	result := p.Process(nil, time.Now())
	if len(result.Records) != 0 || len(result.Diagnostics) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestOccurrencesCombineSlotsAndEvents(t *testing.T) {
	reader := &fakeReader{
		docs: map[string]*extract.Document{
			"calculo.pdf": textDocument("calculo",
				"Horario: Miércoles 08:00-09:30\n"+
					"La entrega del proyecto vence el 12 de mayo de 2025.\n"),
		},
	}
	p := NewProcessorWithReader(reader, 0)
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	result := p.Process([]Upload{{Filename: "calculo.pdf", Data: []byte("x")}}, today)

	anchor := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	occurrences := p.Occurrences(result, anchor, today)

	slots, events := 0, 0
	for _, occ := range occurrences {
		if strings.HasSuffix(occ.Title, "Clase") {
			slots++
		} else {
			events++
		}
	}
	if slots != p.Weeks() {
		t.Errorf("slot occurrences = %d, want %d", slots, p.Weeks())
	}
	if events != len(result.Records[0].Events) {
		t.Errorf("event occurrences = %d, want %d", events, len(result.Records[0].Events))
	}

	onlyEvents := p.EventOccurrences(result)
	if len(onlyEvents) != events {
		t.Errorf("event-only occurrences = %d, want %d", len(onlyEvents), events)
	}
}
