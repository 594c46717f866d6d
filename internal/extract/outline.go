package extract

import (
	"regexp"
	"strings"
)

// DefaultMaxOutlineEntries caps how many enumerated topic lines are kept.
const DefaultMaxOutlineEntries = 50

// minTitleRunes guards against bare page numbers masquerading as topics.
const minTitleRunes = 2

var (
	// 1.1, 2.3.1, 4.1.2.3 — optionally followed by ) . or -
	multiLevelRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+){1,3})[).\-]?\s+(\S.*)$`)
	// 1) 2. 3-
	singleLevelRe = regexp.MustCompile(`^\s*(\d+)[).\-]\s+(\S.*)$`)
)

// ExtractOutline scans lines for enumerated topic entries, multi-level
// numbering first, preserving first-seen order up to max entries. Pass
// max <= 0 for the default cap.
func ExtractOutline(text string, max int) []OutlineEntry {
	if max <= 0 {
		max = DefaultMaxOutlineEntries
	}

	var entries []OutlineEntry
	for _, line := range strings.Split(text, "\n") {
		m := multiLevelRe.FindStringSubmatch(line)
		if m == nil {
			m = singleLevelRe.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		title := strings.TrimRight(strings.TrimSpace(m[2]), ".")
		if len([]rune(title)) < minTitleRunes {
			continue
		}

		entries = append(entries, OutlineEntry{Numbering: m[1], Title: title})
		if len(entries) >= max {
			break
		}
	}

	return entries
}
