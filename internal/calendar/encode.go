package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

// Encode serializes occurrences into an ICS calendar, one VEVENT per
// occurrence, each carrying its own unique id.
func Encode(occurrences []Occurrence, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//syllabus-digest//ES")

	for _, occurrence := range occurrences {
		event := cal.AddEvent(occurrence.ID)
		event.SetDtStampTime(now)
		event.SetSummary(occurrence.Title)
		event.SetStartAt(occurrence.Start)
		event.SetEndAt(occurrence.End)
		if occurrence.Description != "" {
			event.SetDescription(occurrence.Description)
		}
	}

	return []byte(cal.Serialize())
}
