// Package calendar expands recurring schedule slots into concrete weekly
// occurrences and encodes occurrence lists as ICS calendars.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/syllabus-digest/internal/extract"
	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// DefaultWeeks is how many weekly occurrences one slot expands into.
const DefaultWeeks = 15

// Occurrence is one concrete calendar instance of a recurring slot or a
// detected dated event.
type Occurrence struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Description string
}

// mondayIndex converts Go's Sunday-based weekday to the Monday = 0
// convention used by schedule slots.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ExpandSlot generates weekly occurrences for one slot. With an anchor
// date the first occurrence lands in the anchor's week, shifted forward
// seven days if that would fall before the anchor itself; without one,
// the next future (or same-day) weekday relative to now is used. Weekend
// slots expand to nothing: class schedules are assumed weekday-only.
// Times are naive local, no timezone conversion.
func ExpandSlot(slot extract.ScheduleSlot, anchor, now time.Time, weeks int, course string) []Occurrence {
	if slot.Weekday >= lexicon.Saturday {
		return nil
	}
	if weeks <= 0 {
		weeks = DefaultWeeks
	}

	reference := anchor
	if reference.IsZero() {
		reference = now
	}
	refDate := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())

	var first time.Time
	if !anchor.IsZero() {
		first = refDate.AddDate(0, 0, slot.Weekday-mondayIndex(refDate.Weekday()))
		if first.Before(refDate) {
			first = first.AddDate(0, 0, 7)
		}
	} else {
		delta := (slot.Weekday - mondayIndex(refDate.Weekday()) + 7) % 7
		first = refDate.AddDate(0, 0, delta)
	}

	title := fmt.Sprintf("[%s] Clase", course)
	description := fmt.Sprintf("Clase semanal %s, detectada en %s", slot.String(), course)

	occurrences := make([]Occurrence, 0, weeks)
	for week := 0; week < weeks; week++ {
		day := first.AddDate(0, 0, 7*week)
		occurrences = append(occurrences, Occurrence{
			ID:          uuid.NewString(),
			Title:       title,
			Start:       time.Date(day.Year(), day.Month(), day.Day(), slot.StartHour, slot.StartMin, 0, 0, day.Location()),
			End:         time.Date(day.Year(), day.Month(), day.Day(), slot.EndHour, slot.EndMin, 0, 0, day.Location()),
			Description: description,
		})
	}
	return occurrences
}

// ExpandSlots expands every slot of a course record.
func ExpandSlots(slots []extract.ScheduleSlot, anchor, now time.Time, weeks int, course string) []Occurrence {
	var occurrences []Occurrence
	for _, slot := range slots {
		occurrences = append(occurrences, ExpandSlot(slot, anchor, now, weeks, course)...)
	}
	return occurrences
}

// FromDateEvents converts detected dated events into one-hour calendar
// occurrences named the way the unified calendar titles them.
func FromDateEvents(events []extract.DateEvent) []Occurrence {
	occurrences := make([]Occurrence, 0, len(events))
	for _, event := range events {
		keyword := event.Keyword
		if keyword != "" {
			keyword = strings.ToUpper(keyword[:1]) + keyword[1:]
		}
		occurrences = append(occurrences, Occurrence{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("[%s] %s - %s", event.Course, keyword, event.Context),
			Start:       event.When,
			End:         event.When.Add(time.Hour),
			Description: fmt.Sprintf("Detectado en %s", event.Course),
		})
	}
	return occurrences
}
