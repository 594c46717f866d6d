package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// The positional strategy handles grid layouts where weekdays are column
// headers rather than inline text: weekday tokens define vertical
// columns, words are bucketed into horizontal rows, and a time range
// found in a row is attributed to every column that has row content
// under it.

const (
	// columnTolerance is the horizontal distance a word may sit from a
	// day column's center and still belong to it.
	columnTolerance = 60.0

	// rowTolerance is both the row bucketing granularity and the vertical
	// distance allowed between a word and its row's center.
	rowTolerance = 8.0
)

// rowBucket assigns a vertical center to a row index at rowTolerance
// granularity. Every extractor that clusters word boxes into rows goes
// through it, so the same page buckets identically everywhere.
func rowBucket(y float64) int {
	return int(math.Round(y / rowTolerance))
}

func foldWordToken(text string) string {
	return strings.TrimSuffix(strings.Trim(strings.TrimSpace(text), ":;,"), ".")
}

func wordHasDigit(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}

// positionalSlots clusters one page's words into day columns and time
// rows. It returns nil when the page has no recognizable day columns,
// which signals the caller to fall back to the textual strategies.
func positionalSlots(words []Word) []ScheduleSlot {
	// Day columns: average horizontal center of every occurrence of each
	// weekday token.
	type column struct {
		sum float64
		n   int
	}
	columns := make(map[int]*column)
	dayWord := make(map[int]bool, len(words))
	for i, w := range words {
		idx := lexicon.WeekdayIndex(foldWordToken(w.Text))
		if idx < 0 {
			continue
		}
		dayWord[i] = true
		if columns[idx] == nil {
			columns[idx] = &column{}
		}
		columns[idx].sum += w.CenterX()
		columns[idx].n++
	}
	if len(columns) == 0 {
		return nil
	}

	// Rows: bucket words by vertical position.
	rows := make(map[int][]int)
	for i, w := range words {
		bucket := rowBucket(w.CenterY())
		rows[bucket] = append(rows[bucket], i)
	}

	buckets := make([]int, 0, len(rows))
	for b := range rows {
		buckets = append(buckets, b)
	}
	sort.Ints(buckets)

	var slots []ScheduleSlot
	for _, bucket := range buckets {
		indices := rows[bucket]
		sort.Slice(indices, func(a, b int) bool { return words[indices[a]].Left < words[indices[b]].Left })

		parts := make([]string, 0, len(indices))
		for _, i := range indices {
			parts = append(parts, words[i].Text)
		}
		line := strings.Join(parts, " ")

		m := timeRangeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sh, sm, okStart := parseClock(m[1])
		eh, em, okEnd := parseClock(m[2])
		if !okStart || !okEnd {
			continue
		}

		// Vertical center of the row's digit-bearing words.
		centerSum, centerCount := 0.0, 0
		for _, i := range indices {
			if wordHasDigit(words[i].Text) {
				centerSum += words[i].CenterY()
				centerCount++
			}
		}
		if centerCount == 0 {
			continue
		}
		rowCenter := centerSum / float64(centerCount)

		// A column claims the time range when it has non-time,
		// non-day-label content near the row center.
		for weekday := lexicon.Monday; weekday <= lexicon.Sunday; weekday++ {
			col, ok := columns[weekday]
			if !ok {
				continue
			}
			colCenter := col.sum / float64(col.n)
			for _, i := range indices {
				if dayWord[i] || wordHasDigit(words[i].Text) {
					continue
				}
				if math.Abs(words[i].CenterX()-colCenter) <= columnTolerance &&
					math.Abs(words[i].CenterY()-rowCenter) <= rowTolerance {
					slots = append(slots, ScheduleSlot{Weekday: weekday, StartHour: sh, StartMin: sm, EndHour: eh, EndMin: em})
					break
				}
			}
		}
	}

	return slots
}
