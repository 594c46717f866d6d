package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

const (
	// contextRadius is the number of characters taken on each side of a
	// trigger keyword when searching for a nearby date.
	contextRadius = 120

	defaultEventHour = 9

	// yearRollThreshold is how many days in the past a year-less date may
	// fall before it is assumed to belong to the next calendar year.
	yearRollThreshold = 30
)

// The three date fragment shapes, tried in fixed order. Named groups keep
// the day/month/year extraction uniform across shapes.
var datePatterns = []*regexp.Regexp{
	// 12/05, 12-05, 12/05/2025, 12/05/25
	regexp.MustCompile(`(?i)(?P<day>\d{1,2})[/\-](?P<month>\d{1,2})(?:[/\-](?P<year>\d{2,4}))?`),
	// 12 de mayo, 12 mayo, 12 de mayo de 2025
	regexp.MustCompile(`(?i)(?P<day>\d{1,2})\s*(?:de\s*)?(?P<month>\p{L}+)(?:\s+de\s+(?P<year>\d{4}))?`),
	// mayo 12, May 12 de 2025
	regexp.MustCompile(`(?i)(?P<month>\p{L}+)\s+(?P<day>\d{1,2})(?:\s+de\s+(?P<year>\d{4}))?`),
}

// ParseDate normalizes a free-text date fragment into a concrete local
// date-time, defaulting the clock to 09:00. Patterns are tried in fixed
// order and the leftmost match of the first matching pattern wins. When
// the fragment carries no year, the year is inferred from today: current
// year unless that puts the date more than 30 days in the past, in which
// case it rolls to the next year. Returns false when no shape matches.
func ParseDate(fragment string, today time.Time) (time.Time, bool) {
	lower := strings.ToLower(fragment)

	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		day, month, year := 0, 0, 0
		for i, name := range pattern.SubexpNames() {
			if i == 0 || m[i] == "" {
				continue
			}
			switch name {
			case "day":
				day, _ = strconv.Atoi(m[i])
			case "month":
				if n, err := strconv.Atoi(m[i]); err == nil {
					month = n
				} else {
					month = lexicon.MonthNumber(m[i])
				}
			case "year":
				if len(m[i]) == 4 {
					year, _ = strconv.Atoi(m[i])
				} else {
					year, _ = strconv.Atoi("20" + m[i])
				}
			}
		}

		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}

		if year == 0 {
			tentative := time.Date(today.Year(), time.Month(month), day,
				defaultEventHour, 0, 0, 0, today.Location())
			if int(tentative.Sub(today).Hours()/24) < -yearRollThreshold {
				tentative = time.Date(today.Year()+1, time.Month(month), day,
					defaultEventHour, 0, 0, 0, today.Location())
			}
			return tentative, true
		}
		return time.Date(year, time.Month(month), day,
			defaultEventHour, 0, 0, 0, today.Location()), true
	}

	return time.Time{}, false
}

// findDate returns the first parseable date inside text. Every match of
// every pattern is tried, so a date-shaped but invalid fragment earlier
// in the text (the "00-14" inside a 13:00-14:30 time range) does not
// shadow a real date after it.
func findDate(text string, today time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	for _, pattern := range datePatterns {
		for _, fragment := range pattern.FindAllString(lower, -1) {
			if when, ok := ParseDate(fragment, today); ok {
				return when, true
			}
		}
	}
	return time.Time{}, false
}

// runeWindow returns the slice of text spanning up to radius runes on
// each side of the byte span [from, to). Boundaries move rune by rune,
// so the window never cuts a multi-byte character in half.
func runeWindow(text string, from, to, radius int) string {
	start := from
	for n := 0; n < radius && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := to
	for n := 0; n < radius && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[start:end]
}

// ExtractDateEvents scans a document for trigger keywords and resolves a
// date inside a ±120-character window around each occurrence. Windows
// without a parseable date are skipped silently. A keyword occurrence
// overlapping the span of an earlier hit is ignored, so "exam" matching
// inside an already-reported "examen" does not double-report. Events are
// deduplicated by (keyword, instant, context) preserving first-seen
// order.
func ExtractDateEvents(doc *Document, today time.Time) []DateEvent {
	text := doc.FullText()
	lowered := strings.ToLower(text)

	var events []DateEvent
	var claimed [][2]int
	seen := make(map[string]bool)

	overlaps := func(start, end int) bool {
		for _, span := range claimed {
			if start < span[1] && end > span[0] {
				return true
			}
		}
		return false
	}

	for _, keyword := range lexicon.EventKeywords {
		offset := 0
		for {
			idx := strings.Index(lowered[offset:], keyword)
			if idx < 0 {
				break
			}
			idx += offset
			offset = idx + len(keyword)

			if overlaps(idx, idx+len(keyword)) {
				continue
			}

			window := runeWindow(text, idx, idx+len(keyword), contextRadius)

			when, ok := findDate(window, today)
			if !ok {
				continue
			}

			context := strings.Join(strings.Fields(window), " ")
			key := keyword + "|" + when.Format(time.RFC3339) + "|" + context
			if seen[key] {
				continue
			}
			seen[key] = true
			claimed = append(claimed, [2]int{idx, idx + len(keyword)})

			events = append(events, DateEvent{
				Course:  doc.Course,
				Keyword: keyword,
				When:    when,
				Context: context,
			})
		}
	}

	return events
}
