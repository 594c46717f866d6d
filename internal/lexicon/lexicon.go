// Package lexicon holds the static bilingual vocabulary used by every
// extractor: weekday and month names, trigger keywords, heading synonyms,
// and the accent-folding normalizer they all share. The tables are
// immutable process-wide data with no initialization lifecycle.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Weekday indices follow ISO order with Monday = 0.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays maps accent-folded weekday tokens (Spanish and English, full
// names and common abbreviations) to their index. Keys must already be
// normalized with Normalize.
var Weekdays = map[string]int{
	// Spanish full names
	"lunes":     Monday,
	"martes":    Tuesday,
	"miercoles": Wednesday,
	"jueves":    Thursday,
	"viernes":   Friday,
	"sabado":    Saturday,
	"domingo":   Sunday,
	// Spanish abbreviations
	"lu":  Monday,
	"lun": Monday,
	"ma":  Tuesday,
	"mar": Tuesday,
	"mi":  Wednesday,
	"mie": Wednesday,
	"ju":  Thursday,
	"jue": Thursday,
	"vi":  Friday,
	"vie": Friday,
	"sa":  Saturday,
	"sab": Saturday,
	"do":  Sunday,
	"dom": Sunday,
	// English
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
	"mon":       Monday,
	"tue":       Tuesday,
	"tues":      Tuesday,
	"wed":       Wednesday,
	"thu":       Thursday,
	"thur":      Thursday,
	"thurs":     Thursday,
	"fri":       Friday,
	"sat":       Saturday,
	"sun":       Sunday,
}

// Months maps accent-folded month names to their 1-based month number.
// Spanish includes the "setiembre" spelling variant.
var Months = map[string]int{
	"enero":      1,
	"febrero":    2,
	"marzo":      3,
	"abril":      4,
	"mayo":       5,
	"junio":      6,
	"julio":      7,
	"agosto":     8,
	"septiembre": 9,
	"setiembre":  9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12,
	"january":    1,
	"february":   2,
	"march":      3,
	"april":      4,
	"may":        5,
	"june":       6,
	"july":       7,
	"august":     8,
	"september":  9,
	"october":    10,
	"november":   11,
	"december":   12,
}

// EventKeywords trigger a context-window search for a nearby date.
var EventKeywords = []string{
	"examen", "entrega", "vence", "tarea", "proyecto",
	"exam", "deadline", "due", "assignment", "project",
}

// EvaluationHints mark lines that plausibly describe a graded item; they
// gate the inline evaluation strategy when no grading section was located.
var EvaluationHints = []string{
	"examen", "exam", "parcial", "final", "tarea", "homework",
	"proyecto", "project", "quiz", "laboratorio", "lab", "practica",
	"participacion", "participation", "trabajo", "presentacion",
	"presentation", "assignment", "midterm",
}

// GenericLabels are evaluation labels carrying no information on their
// own; cleaned labels matching one of these are discarded.
var GenericLabels = map[string]bool{
	"total":        true,
	"nota":         true,
	"nota final":   true,
	"grade":        true,
	"final grade":  true,
	"score":        true,
	"calificacion": true,
	"ponderacion":  true,
	"porcentaje":   true,
	"weighting":    true,
	"weight":       true,
}

// Section heading synonyms, tried in priority order.
var (
	EvaluationHeadings = []string{
		"evaluacion", "evaluaciones", "criterios de evaluacion", "calificacion",
		"ponderacion", "evaluation", "grading", "assessment", "grade breakdown",
	}
	OutlineHeadings = []string{
		"contenido", "contenidos", "temario", "programa", "unidades",
		"topics", "outline", "syllabus content", "course content", "schedule of topics",
	}
	BibliographyHeadings = []string{
		"bibliografia", "referencias", "recursos", "material de apoyo",
		"bibliography", "references", "resources", "readings", "textbook",
	}
	RulesHeadings = []string{
		"reglamento", "reglas", "normas", "politicas", "politica del curso",
		"rules", "policies", "course policies", "academic integrity",
	}
)

// ContactKeywords announce an instructor name, tried in priority order.
var ContactKeywords = []string{
	"profesor", "profesora", "docente", "instructor", "contacto",
	"professor", "teacher", "contact", "lecturer",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a token and strips diacritics so that lexicon
// lookups tolerate accented and unaccented spellings alike.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to lowercasing.
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// WeekdayIndex resolves a weekday token in either language, returning
// -1 when the token is not a weekday.
func WeekdayIndex(token string) int {
	if idx, ok := Weekdays[Normalize(strings.TrimSpace(token))]; ok {
		return idx
	}
	return -1
}

// MonthNumber resolves a month name in either language, returning 0 when
// the token is not a month.
func MonthNumber(token string) int {
	return Months[Normalize(strings.TrimSpace(token))]
}

// IsGenericLabel reports whether a cleaned evaluation label is one of the
// contentless words that should be dropped.
func IsGenericLabel(label string) bool {
	return GenericLabels[Normalize(strings.TrimSpace(label))]
}
