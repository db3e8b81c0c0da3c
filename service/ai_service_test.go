package service

import (
	"testing"

	"go.uber.org/zap"
)

func TestParsePreferences_PlainJSON(t *testing.T) {

	prefs, err := parsePreferences(
		`{"budget": 200000, "brand": "Toyota", "year_min": 2019}`,
		zap.NewNop().Sugar(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prefs.Budget == nil || *prefs.Budget != 200000 {
		t.Errorf("expected budget 200000, got %v", prefs.Budget)
	}
	if prefs.Brand == nil || *prefs.Brand != "Toyota" {
		t.Errorf("expected brand Toyota, got %v", prefs.Brand)
	}
	if prefs.YearMin == nil || *prefs.YearMin != 2019 {
		t.Errorf("expected year_min 2019, got %v", prefs.YearMin)
	}
	if prefs.Model != nil || prefs.YearMax != nil {
		t.Errorf("unset fields should stay nil")
	}
}

func TestParsePreferences_MarkdownFence(t *testing.T) {

	prefs, err := parsePreferences(
		"```json\n{\"budget\": 150000}\n```",
		zap.NewNop().Sugar(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Budget == nil || *prefs.Budget != 150000 {
		t.Errorf("expected budget 150000, got %v", prefs.Budget)
	}
}

func TestParsePreferences_NumericStrings(t *testing.T) {

	prefs, err := parsePreferences(
		`{"budget": "200000", "year_max": "2022"}`,
		zap.NewNop().Sugar(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Budget == nil || *prefs.Budget != 200000 {
		t.Errorf("expected coerced budget 200000, got %v", prefs.Budget)
	}
	if prefs.YearMax == nil || *prefs.YearMax != 2022 {
		t.Errorf("expected coerced year_max 2022, got %v", prefs.YearMax)
	}
}

func TestParsePreferences_MalformedValueDropped(t *testing.T) {

	prefs, err := parsePreferences(
		`{"budget": "barato", "brand": "Nissan"}`,
		zap.NewNop().Sugar(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Budget != nil {
		t.Errorf("malformed budget should be dropped")
	}
	if prefs.Brand == nil || *prefs.Brand != "Nissan" {
		t.Errorf("valid fields should survive a malformed sibling")
	}
}

func TestParsePreferences_EmptyObject(t *testing.T) {

	prefs, err := parsePreferences("{}", zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prefs.IsEmpty() {
		t.Errorf("expected empty preferences")
	}
}

func TestParsePreferences_NoJSON(t *testing.T) {

	if _, err := parsePreferences("no tengo preferencias", zap.NewNop().Sugar()); err == nil {
		t.Errorf("expected error when output has no JSON object")
	}
}

func TestParsePreferences_InvalidJSON(t *testing.T) {

	if _, err := parsePreferences(`{"budget": `+"\n\nalgo}", zap.NewNop().Sugar()); err == nil {
		t.Errorf("expected error for invalid JSON")
	}
}
