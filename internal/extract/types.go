// Package extract implements the text and layout heuristics that turn the
// noisy plain text recovered from syllabus PDFs into structured records:
// dated events, weekly schedule slots, evaluation weightings, topic
// outlines, and instructor contact information.
package extract

import (
	"fmt"
	"time"
)

// NotFound is the sentinel returned when a best-effort search produced
// nothing. Callers treat it as an omission, never as an error.
const NotFound = "No encontrado"

// Word is a single word recovered from a page together with its bounding
// box in page coordinates.
type Word struct {
	Text   string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// CenterX returns the horizontal center of the word's bounding box.
func (w Word) CenterX() float64 { return (w.Left + w.Right) / 2 }

// CenterY returns the vertical center of the word's bounding box.
func (w Word) CenterY() float64 { return (w.Top + w.Bottom) / 2 }

// Page holds one page's plain text plus, when layout-aware extraction was
// requested, its word list. Text may be empty for unreadable pages.
type Page struct {
	Text  string
	Words []Word
}

// Document is the raw material one uploaded file contributes: its course
// label (filename, extension stripped) and its ordered pages. Documents
// are request-scoped and discarded after extraction.
type Document struct {
	Course string
	Pages  []Page
}

// FullText joins all page texts with newlines.
func (d *Document) FullText() string {
	var out string
	for i, p := range d.Pages {
		if i > 0 {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

// DateEvent is one dated occurrence detected near a trigger keyword.
type DateEvent struct {
	Course  string
	Keyword string
	When    time.Time
	Context string
}

// ScheduleSlot is a recurring weekly class session: weekday (0 = Monday)
// plus start and end clock times.
type ScheduleSlot struct {
	Weekday   int
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

// String renders the slot for logs and event descriptions.
func (s ScheduleSlot) String() string {
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d", weekdayName(s.Weekday), s.StartHour, s.StartMin, s.EndHour, s.EndMin)
}

func weekdayName(idx int) string {
	names := []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}
	if idx < 0 || idx >= len(names) {
		return "?"
	}
	return names[idx]
}

// EvaluationItem is one graded component and its weight.
type EvaluationItem struct {
	Label      string
	Percentage int
}

// OutlineEntry is one enumerated topic line: its dot-separated numbering
// and the topic title.
type OutlineEntry struct {
	Numbering string
	Title     string
}

// ContactInfo holds the instructor name and email found in a document.
// Either field may be the NotFound sentinel; the two are located
// independently and carry no proximity guarantee.
type ContactInfo struct {
	Name  string
	Email string
}

// CourseRecord aggregates everything extracted from one document. It is
// built once per uploaded file and handed straight to the renderer.
type CourseRecord struct {
	Course       string
	Events       []DateEvent
	Slots        []ScheduleSlot
	Evaluation   []EvaluationItem
	Outline      []OutlineEntry
	OutlineRaw   string
	Bibliography string
	Contact      ContactInfo
	Rules        string
}
