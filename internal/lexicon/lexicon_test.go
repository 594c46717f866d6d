package lexicon

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "accented lowercase", input: "miércoles", expected: "miercoles"},
		{name: "accented uppercase", input: "EVALUACIÓN", expected: "evaluacion"},
		{name: "enye", input: "Año", expected: "ano"},
		{name: "plain ascii", input: "Monday", expected: "monday"},
		{name: "mixed", input: "Sábado y DOMINGO", expected: "sabado y domingo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		token    string
		expected int
	}{
		{"Lunes", Monday},
		{"LU", Monday},
		{"miércoles", Wednesday},
		{"MI", Wednesday},
		{"Wednesday", Wednesday},
		{"thu", Thursday},
		{"Domingo", Sunday},
		{"aula", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := WeekdayIndex(tt.token); got != tt.expected {
			t.Errorf("WeekdayIndex(%q) = %d, want %d", tt.token, got, tt.expected)
		}
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		token    string
		expected int
	}{
		{"enero", 1},
		{"septiembre", 9},
		{"setiembre", 9},
		{"Diciembre", 12},
		{"May", 5},
		{"October", 10},
		{"notamonth", 0},
	}

	for _, tt := range tests {
		if got := MonthNumber(tt.token); got != tt.expected {
			t.Errorf("MonthNumber(%q) = %d, want %d", tt.token, got, tt.expected)
		}
	}
}

func TestIsGenericLabel(t *testing.T) {
	if !IsGenericLabel("Total") {
		t.Error("expected Total to be generic")
	}
	if !IsGenericLabel("Calificación") {
		t.Error("expected Calificación to be generic")
	}
	if IsGenericLabel("Examen final") {
		t.Error("expected Examen final to be kept")
	}
}
