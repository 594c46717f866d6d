package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// minNameRunes is the minimum length of a name-shaped run of letters and
// spaces following an instructor-role keyword.
const minNameRunes = 5

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// nameAfterKeyword scans every occurrence of a role keyword and returns
// the first run of capitalized words that follows one. Requiring each
// word to start uppercase keeps the capture from swallowing the rest of
// the sentence ("Profesora Ana Torres dicta el curso").
func nameAfterKeyword(original, folded, needle []rune) string {
	base := 0
	for {
		idx := indexRunes(folded[base:], needle)
		if idx < 0 {
			return ""
		}
		idx += base
		base = idx + 1

		pos := idx + len(needle)
		for pos < len(original) && (original[pos] == ':' || original[pos] == '.' || original[pos] == '-' ||
			original[pos] == ' ' || original[pos] == '\t') {
			pos++
		}

		var name []rune
		for pos < len(original) && unicode.IsUpper(original[pos]) {
			for pos < len(original) && unicode.IsLetter(original[pos]) {
				name = append(name, original[pos])
				pos++
			}
			if pos < len(original) && original[pos] == ' ' {
				name = append(name, ' ')
				pos++
			}
		}

		if candidate := strings.TrimSpace(string(name)); len([]rune(candidate)) >= minNameRunes {
			return candidate
		}
	}
}

// ExtractContact finds the first email-shaped substring and, separately,
// a name following the first instructor-role keyword. The two searches
// are independent: the email and the name may come from unrelated parts
// of the document.
func ExtractContact(text string) ContactInfo {
	contact := ContactInfo{Name: NotFound, Email: NotFound}

	if email := emailRe.FindString(text); email != "" {
		contact.Email = email
	}

	original := []rune(text)
	folded := []rune(lexicon.Normalize(text))
	if len(folded) != len(original) {
		folded = []rune(strings.ToLower(text))
	}

	for _, keyword := range lexicon.ContactKeywords {
		if name := nameAfterKeyword(original, folded, []rune(keyword)); name != "" {
			contact.Name = name
			break
		}
	}

	return contact
}
