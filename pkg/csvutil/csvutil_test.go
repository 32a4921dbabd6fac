package csvutil

import (
	"strings"
	"testing"
	"time"
)

func TestRenderEscapesSpecialCharacters(t *testing.T) {
	out, err := Render(Table{
		Header: []string{"firma", "adresa"},
		Rows: [][]string{
			{"Trans SRL, Arad", "Str. \"Gării\" 5"},
			{"Multi\nLine SRL", "plain"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(out)
	if !strings.Contains(got, `"Trans SRL, Arad"`) {
		t.Fatalf("comma field should be quoted, got:\n%s", got)
	}
	if !strings.Contains(got, `"Str. ""Gării"" 5"`) {
		t.Fatalf("embedded quotes should be doubled, got:\n%s", got)
	}
	if !strings.Contains(got, "\"Multi\nLine SRL\"") {
		t.Fatalf("embedded newline should stay inside a quoted field, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "firma,adresa\n") {
		t.Fatalf("header row missing, got:\n%s", got)
	}
}

func TestRenderWithoutHeader(t *testing.T) {
	out, err := Render(Table{Rows: [][]string{{"a", "b"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "a,b\n" {
		t.Fatalf("got %q want %q", string(out), "a,b\n")
	}
}

func TestFilenamePattern(t *testing.T) {
	at := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	got := Filename("raport", "venit-lunar", "csv", at)
	if got != "raport_venit-lunar_2025-06-15.csv" {
		t.Fatalf("got %q", got)
	}
}
