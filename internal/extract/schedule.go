package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// Schedule slots are recovered with up to three strategies. The two
// textual strategies (inline and line-grouped) always run together and
// their results are unioned; the positional strategy, when word boxes are
// available for a page, runs first and the textual pair is only the
// fallback for pages where it found nothing.

const (
	timeToken = `\d{1,2}(?::\d{2})?\s*(?:[ap]\.?\s?m\.?)?`
	rangeSep  = `\s*(?:-|–|—|a|to)\s*`
	dayToken  = `\p{L}{2,}\.?`
)

var (
	timeRangeRe = regexp.MustCompile(`(?i)\b(` + timeToken + `)` + rangeSep + `(` + timeToken + `)\b`)

	// inlineSlotRe matches "day-list separator? time-range" on one line,
	// where the day list is one or more tokens joined by / , y and &.
	inlineSlotRe = regexp.MustCompile(`(?i)(` + dayToken +
		`(?:\s*(?:[/,&]|y|and)\s*` + dayToken + `)*)[\s:,]*\b(` + timeToken + `)` + rangeSep + `(` + timeToken + `)\b`)

	dayListSepRe = regexp.MustCompile(`(?i)\s*(?:[/,&]|\by\b|\band\b)\s*`)
	meridiemRe   = regexp.MustCompile(`(?i)([ap])\.?\s?m\.?`)
	wordRe       = regexp.MustCompile(`\p{L}+`)
)

// parseClock parses a time token such as "9", "13:00", "9:30am" or
// "10 p.m." into a 24-hour (hour, minute) pair. Minutes default to 00.
func parseClock(token string) (hour, minute int, ok bool) {
	token = strings.TrimSpace(token)

	meridiem := ""
	if m := meridiemRe.FindStringSubmatch(token); m != nil {
		meridiem = strings.ToLower(m[1])
		token = strings.TrimSpace(meridiemRe.ReplaceAllString(token, ""))
	}

	parts := strings.SplitN(token, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 2 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, false
		}
	}

	switch meridiem {
	case "a":
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour != 12 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// resolveDayList splits a matched day-list span on its separators and
// resolves every token through the lexicon, dropping non-weekday tokens.
func resolveDayList(span string) []int {
	var days []int
	for _, token := range dayListSepRe.Split(span, -1) {
		token = strings.TrimSuffix(strings.TrimSpace(token), ".")
		if idx := lexicon.WeekdayIndex(token); idx >= 0 {
			days = append(days, idx)
		}
	}
	return days
}

// inlineSlots implements the inline textual strategy: a single pattern
// matching day list and time range on the same line.
func inlineSlots(text string) []ScheduleSlot {
	var slots []ScheduleSlot
	for _, line := range strings.Split(text, "\n") {
		for _, m := range inlineSlotRe.FindAllStringSubmatch(line, -1) {
			days := resolveDayList(m[1])
			if len(days) == 0 {
				continue
			}
			sh, sm, ok := parseClock(m[2])
			if !ok {
				continue
			}
			eh, em, ok := parseClock(m[3])
			if !ok {
				continue
			}
			for _, day := range days {
				slots = append(slots, ScheduleSlot{Weekday: day, StartHour: sh, StartMin: sm, EndHour: eh, EndMin: em})
			}
		}
	}
	return slots
}

// ambiguousDayToken reports whether a token is one of the two-letter
// day abbreviations written without uppercase; "mi", "do" and "ma" are
// ordinary Spanish words in prose.
func ambiguousDayToken(token string) bool {
	return len([]rune(token)) == 2 && token != strings.ToUpper(token)
}

// lineDays returns the weekday indices of the weekday tokens on a
// line. Lowercase two-letter abbreviations only count when the line
// also carries an unambiguous day token, so the possessive "mi" in
// prose does not read as Miércoles.
func lineDays(line string) []int {
	words := wordRe.FindAllString(line, -1)

	unambiguous := false
	for _, word := range words {
		if lexicon.WeekdayIndex(word) >= 0 && !ambiguousDayToken(word) {
			unambiguous = true
			break
		}
	}

	var days []int
	for _, word := range words {
		idx := lexicon.WeekdayIndex(word)
		if idx < 0 {
			continue
		}
		if ambiguousDayToken(word) && !unambiguous {
			continue
		}
		days = append(days, idx)
	}
	return days
}

// groupedSlots implements the line-grouped textual strategy: a line with
// weekday tokens but no time range sets the current day-group context; a
// line with a time range emits one slot per day in context (or per day on
// that same line when no context exists). The context is cleared after a
// single time line, so a day header pairs with exactly one following time
// line. A header followed by two time lines applies only to the first;
// this is a known limitation of the format.
func groupedSlots(text string) []ScheduleSlot {
	var slots []ScheduleSlot
	var dayGroup []int

	for _, line := range strings.Split(text, "\n") {
		timeMatch := timeRangeRe.FindStringSubmatch(line)
		days := lineDays(line)

		if timeMatch == nil {
			if len(days) > 0 {
				dayGroup = days
			}
			continue
		}

		sh, sm, okStart := parseClock(timeMatch[1])
		eh, em, okEnd := parseClock(timeMatch[2])
		if !okStart || !okEnd {
			continue
		}

		emitDays := dayGroup
		if len(emitDays) == 0 {
			emitDays = days
		}
		for _, day := range emitDays {
			slots = append(slots, ScheduleSlot{Weekday: day, StartHour: sh, StartMin: sm, EndHour: eh, EndMin: em})
		}
		dayGroup = nil
	}

	return slots
}

// textualSlots unions the inline and line-grouped strategies over one
// text block.
func textualSlots(text string) []ScheduleSlot {
	return append(inlineSlots(text), groupedSlots(text)...)
}

// DedupeSlots removes exact (weekday, start, end) duplicates and sorts
// the set by weekday then start time. Deduplication is idempotent.
func DedupeSlots(slots []ScheduleSlot) []ScheduleSlot {
	seen := make(map[ScheduleSlot]bool, len(slots))
	out := make([]ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		if seen[slot] {
			continue
		}
		seen[slot] = true
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		if out[i].StartHour != out[j].StartHour {
			return out[i].StartHour < out[j].StartHour
		}
		return out[i].StartMin < out[j].StartMin
	})
	return out
}

// ExtractSchedule recovers the weekly slot set of a document. Pages with
// word boxes try the positional strategy first and fall back to the
// textual strategies only when it yields nothing; text-only pages go
// straight to the textual strategies. The merged set is deduplicated and
// sorted before being returned.
func ExtractSchedule(doc *Document) []ScheduleSlot {
	var slots []ScheduleSlot
	for _, page := range doc.Pages {
		if len(page.Words) > 0 {
			if positional := positionalSlots(page.Words); len(positional) > 0 {
				slots = append(slots, positional...)
				continue
			}
		}
		slots = append(slots, textualSlots(page.Text)...)
	}
	return DedupeSlots(slots)
}
