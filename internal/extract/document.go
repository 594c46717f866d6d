package extract

import (
	"time"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// BuildCourseRecord runs every extractor over one document and assembles
// the per-course record. Every extractor is best-effort: a miss leaves
// its field empty or set to the NotFound sentinel, never fails the call.
// The reference time drives year inference for year-less dates.
func BuildCourseRecord(doc *Document, today time.Time) *CourseRecord {
	text := doc.FullText()

	record := &CourseRecord{
		Course:  doc.Course,
		Events:  ExtractDateEvents(doc, today),
		Slots:   ExtractSchedule(doc),
		Contact: ExtractContact(text),
	}

	_, record.Evaluation = ExtractEvaluation(doc)

	record.Outline = ExtractOutline(text, 0)
	if len(record.Outline) == 0 {
		// No enumerated topics anywhere: fall back to the raw topics
		// section so the summary still shows something.
		record.OutlineRaw = FindSection(text, lexicon.OutlineHeadings)
	}

	record.Bibliography = FindSection(text, lexicon.BibliographyHeadings)
	record.Rules = FindSection(text, lexicon.RulesHeadings)

	return record
}
