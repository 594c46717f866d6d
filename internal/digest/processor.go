// Package digest orchestrates a batch of uploaded syllabus files: each
// file is parsed and run through the extractors in upload order, and
// per-file failures become diagnostics instead of aborting the batch.
package digest

import (
	"fmt"
	"time"

	"github.com/a3tai/syllabus-digest/internal/calendar"
	"github.com/a3tai/syllabus-digest/internal/extract"
	"github.com/a3tai/syllabus-digest/internal/pdfio"
)

// Upload is one file received from the caller.
type Upload struct {
	Filename string
	Data     []byte
}

// Result aggregates a batch run: one course record per file that parsed,
// plus diagnostics labeled "<filename>: <message>" for everything that
// went wrong along the way.
type Result struct {
	Records     []*extract.CourseRecord
	Diagnostics []string
}

// DocumentReader turns uploaded bytes into an extractable document.
type DocumentReader interface {
	Read(filename string, data []byte) (*extract.Document, []string, error)
}

// Processor runs the extraction pipeline over uploaded files. Processing
// is sequential and request-scoped; a Processor holds no per-request
// state and is safe to share.
type Processor struct {
	reader DocumentReader
	weeks  int
}

// NewProcessor creates a processor reading PDFs with the given upload
// size limit and recurrence horizon in weeks.
func NewProcessor(maxFileSize int64, weeks int) *Processor {
	return NewProcessorWithReader(pdfio.NewReader(maxFileSize), weeks)
}

// NewProcessorWithReader creates a processor with a custom document
// reader.
func NewProcessorWithReader(reader DocumentReader, weeks int) *Processor {
	if weeks <= 0 {
		weeks = calendar.DefaultWeeks
	}
	return &Processor{
		reader: reader,
		weeks:  weeks,
	}
}

// Weeks returns the configured recurrence horizon.
func (p *Processor) Weeks() int {
	return p.weeks
}

// Process handles one request's uploads in order. A file that cannot be
// parsed contributes a diagnostic and is skipped; extraction itself is
// best-effort and never fails a file.
func (p *Processor) Process(uploads []Upload, today time.Time) *Result {
	result := &Result{}

	for _, upload := range uploads {
		doc, warnings, err := p.reader.Read(upload.Filename, upload.Data)
		for _, warning := range warnings {
			result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("%s: %s", upload.Filename, warning))
		}
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("%s: %v", upload.Filename, err))
			continue
		}

		result.Records = append(result.Records, extract.BuildCourseRecord(doc, today))
	}

	return result
}

// Occurrences expands every record's schedule slots plus its dated
// events into calendar occurrences.
func (p *Processor) Occurrences(result *Result, anchor, now time.Time) []calendar.Occurrence {
	var occurrences []calendar.Occurrence
	for _, record := range result.Records {
		occurrences = append(occurrences, calendar.ExpandSlots(record.Slots, anchor, now, p.weeks, record.Course)...)
		occurrences = append(occurrences, calendar.FromDateEvents(record.Events)...)
	}
	return occurrences
}

// EventOccurrences converts only the dated events of a batch, the shape
// the unified event calendar wants.
func (p *Processor) EventOccurrences(result *Result) []calendar.Occurrence {
	var occurrences []calendar.Occurrence
	for _, record := range result.Records {
		occurrences = append(occurrences, calendar.FromDateEvents(record.Events)...)
	}
	return occurrences
}
