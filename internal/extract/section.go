package extract

import (
	"regexp"
	"strings"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// maxSectionRunes caps a section body when no following heading is found
// to terminate it.
const maxSectionRunes = 1200

// headingLineRe matches a line that looks like a section heading: at
// least four consecutive uppercase (possibly accented) letters and
// spaces, optionally ending in a colon.
var headingLineRe = regexp.MustCompile(`(?m)^[ \t]*[A-ZÁÉÍÓÚÑÜ][A-ZÁÉÍÓÚÑÜ \t]{3,}:?[ \t]*$`)

// indexRunes returns the first index of needle in haystack, or -1.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// FindSection locates the first heading synonym that is immediately
// followed (modulo spaces) by a colon or line break, and returns the text
// after it up to the next heading-like line or the length cap. Synonyms
// are tried in priority order and matching is case- and accent-folded.
// Returns NotFound when no synonym matches.
func FindSection(text string, synonyms []string) string {
	original := []rune(text)
	folded := []rune(lexicon.Normalize(text))
	if len(folded) != len(original) {
		// Accent folding changed the rune count (decomposed input);
		// search case-insensitively only so offsets stay aligned.
		folded = []rune(strings.ToLower(text))
	}

	for _, synonym := range synonyms {
		needle := []rune(lexicon.Normalize(synonym))
		base := 0
		for {
			idx := indexRunes(folded[base:], needle)
			if idx < 0 {
				break
			}
			idx += base
			base = idx + 1

			after := idx + len(needle)
			for after < len(folded) && (folded[after] == ' ' || folded[after] == '\t') {
				after++
			}
			if after >= len(folded) || (folded[after] != ':' && folded[after] != '\n') {
				continue
			}

			body := string(original[after+1:])
			if loc := headingLineRe.FindStringIndex(body); loc != nil {
				body = body[:loc[0]]
			} else if runes := []rune(body); len(runes) > maxSectionRunes {
				body = string(runes[:maxSectionRunes])
			}

			if trimmed := strings.TrimSpace(body); trimmed != "" {
				return trimmed
			}
		}
	}

	return NotFound
}
