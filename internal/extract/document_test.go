package extract

import (
	"testing"
	"time"
)

func TestBuildCourseRecord(t *testing.T) {
	doc := &Document{
		Course: "calculo",
		Pages: []Page{{Text: "Horario: Lunes 13:00-14:30\n" +
			"El examen final será el 20/06/2025.\n" +
			"EVALUACIÓN:\n" +
			"Parcial: 60%\nTrabajos: 40%\n" +
			"TEMARIO:\n" +
			"1.1 Introducción\n1.2 Límites\n" +
			"BIBLIOGRAFÍA:\n" +
			"Stewart, Cálculo de una variable.\n" +
			"Profesor: Juan Pérez\nCorreo: jperez@uni.edu\n"}},
	}
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	record := BuildCourseRecord(doc, today)

	if record.Course != "calculo" {
		t.Errorf("course = %q", record.Course)
	}
	if len(record.Events) != 1 || record.Events[0].When.Day() != 20 {
		t.Errorf("events = %v", record.Events)
	}
	if len(record.Slots) != 1 {
		t.Errorf("slots = %v", record.Slots)
	}
	if len(record.Evaluation) != 2 {
		t.Errorf("evaluation = %v", record.Evaluation)
	}
	if len(record.Outline) != 2 || record.OutlineRaw != "" {
		t.Errorf("outline = %v, raw = %q", record.Outline, record.OutlineRaw)
	}
	if record.Bibliography == NotFound {
		t.Error("bibliography not found")
	}
	if record.Contact.Name != "Juan Pérez" || record.Contact.Email != "jperez@uni.edu" {
		t.Errorf("contact = %+v", record.Contact)
	}
	if record.Rules != NotFound {
		t.Errorf("rules = %q, want sentinel", record.Rules)
	}
}

func TestBuildCourseRecordOutlineFallback(t *testing.T) {
	doc := &Document{
		Course: "historia",
		Pages: []Page{{Text: "TEMARIO:\n" +
			"La revolución industrial\nEl siglo veinte\n"}},
	}

	record := BuildCourseRecord(doc, time.Now())
	if len(record.Outline) != 0 {
		t.Errorf("outline = %v, want none", record.Outline)
	}
	if record.OutlineRaw == NotFound || record.OutlineRaw == "" {
		t.Errorf("raw outline = %q, want section text", record.OutlineRaw)
	}
}

func TestBuildCourseRecordEmptyDocument(t *testing.T) {
	record := BuildCourseRecord(&Document{Course: "vacio"}, time.Now())

	if len(record.Events) != 0 || len(record.Slots) != 0 || len(record.Evaluation) != 0 {
		t.Errorf("record = %+v, want empty collections", record)
	}
	if record.Contact.Name != NotFound || record.Contact.Email != NotFound {
		t.Errorf("contact = %+v, want sentinels", record.Contact)
	}
}
