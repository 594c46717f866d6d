package extract

import (
	"strings"
	"testing"
)

func TestFindSection(t *testing.T) {
	text := "PROGRAMA DEL CURSO\n" +
		"EVALUACIÓN:\n" +
		"Examen parcial 30%\nExamen final 70%\n" +
		"BIBLIOGRAFÍA:\n" +
		"Stewart, Cálculo de una variable.\n"

	got := FindSection(text, []string{"evaluacion", "grading"})
	if !strings.Contains(got, "Examen parcial 30%") {
		t.Errorf("section missing body, got %q", got)
	}
	if strings.Contains(got, "Stewart") {
		t.Errorf("section should stop at next heading, got %q", got)
	}

	biblio := FindSection(text, []string{"bibliografia"})
	if !strings.Contains(biblio, "Stewart") {
		t.Errorf("bibliografía body = %q", biblio)
	}
}

func TestFindSectionSynonymPriority(t *testing.T) {
	text := "GRADING:\nHomework 40%\n\nASSESSMENT:\nFinal exam 60%\n"

	got := FindSection(text, []string{"assessment", "grading"})
	if !strings.Contains(got, "Final exam") {
		t.Errorf("expected first synonym to win, got %q", got)
	}
}

func TestFindSectionRequiresColonOrLineBreak(t *testing.T) {
	text := "La evaluación continua del alumnado es importante.\n"

	if got := FindSection(text, []string{"evaluacion"}); got != NotFound {
		t.Errorf("expected %q for inline mention, got %q", NotFound, got)
	}
}

func TestFindSectionNotFound(t *testing.T) {
	if got := FindSection("sin encabezados", []string{"evaluacion"}); got != NotFound {
		t.Errorf("got %q, want %q", got, NotFound)
	}
}

func TestFindSectionLengthCap(t *testing.T) {
	text := "TEMARIO:\n" + strings.Repeat("a", 5000)

	got := FindSection(text, []string{"temario"})
	if len([]rune(got)) > maxSectionRunes {
		t.Errorf("section length %d exceeds cap %d", len([]rune(got)), maxSectionRunes)
	}
}
