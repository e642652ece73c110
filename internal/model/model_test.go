package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

func TestCategoryKnown(t *testing.T) {
	for _, c := range model.KnownCategories {
		if !c.Known() {
			t.Errorf("%q.Known() = false, want true", c)
		}
	}
	other := model.ParseCategory("  Operação Carnaval ")
	if other != "Operação Carnaval" {
		t.Errorf("ParseCategory trimmed = %q", other)
	}
	if other.Known() {
		t.Errorf("%q.Known() = true, want false", other)
	}
	if other.Color() == model.Sentinel.Color() {
		t.Errorf("free-text category should use the fallback color")
	}
}

func TestIdentified(t *testing.T) {
	tests := []struct {
		personnel string
		want      bool
	}{
		{"AL SD OLÍVIA", true},
		{"", false},
		{model.PlaceholderPersonnel, false},
	}
	for _, tt := range tests {
		r := model.ServiceRecord{Personnel: tt.personnel}
		if got := r.Identified(); got != tt.want {
			t.Errorf("Identified(%q) = %v, want %v", tt.personnel, got, tt.want)
		}
	}
}

func TestNewRecord(t *testing.T) {
	r, err := model.NewRecord("x", model.Sentinel, "18/11/2025", "19:00", "07:00", "")
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if r.DurationHours != 12 {
		t.Errorf("DurationHours = %v, want 12", r.DurationHours)
	}

	_, err = model.NewRecord("y", model.SAT, "01/12/2025", "7h", "22:00", "")
	var fe *timecalc.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("NewRecord with bad time: error = %v, want *FormatError", err)
	}
}

func TestParseFilterSpec(t *testing.T) {
	spec, err := model.ParseFilterSpec("olívia", "Escala Alunos", "2025-11-01", "30/11/2025")
	if err != nil {
		t.Fatalf("ParseFilterSpec: %v", err)
	}
	if spec.From == nil || *spec.From != (timecalc.Date{Year: 2025, Month: time.November, Day: 1}) {
		t.Errorf("From = %v", spec.From)
	}
	if spec.To == nil || *spec.To != (timecalc.Date{Year: 2025, Month: time.November, Day: 30}) {
		t.Errorf("To = %v", spec.To)
	}
	if spec.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}

	empty, err := model.ParseFilterSpec("", model.MatchAll, "", "")
	if err != nil {
		t.Fatalf("ParseFilterSpec empty: %v", err)
	}
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty spec")
	}
	if empty.String() != "all records" {
		t.Errorf("String() = %q", empty.String())
	}

	if _, err := model.ParseFilterSpec("", "", "not-a-date", ""); err == nil {
		t.Error("expected error for malformed from bound")
	}
}
