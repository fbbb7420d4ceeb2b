package pagectx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/iw2rmb/autotab/surface"
)

var page = Page{
	Title:       "  Contact us ",
	Description: "Send a message to support",
	Lines: []string{
		"Support form",
		"",
		"Subject:",
		"[field]",
		"We reply   within a day",
		"Footer",
	},
}

func TestNearbyText_SortedByDistance(t *testing.T) {
	got := NearbyText(page.Lines, 3, 2)
	want := "Subject: We reply within a day Footer"
	if got != want {
		t.Fatalf("nearby: got %q, want %q", got, want)
	}

	if got := NearbyText(page.Lines, 3, 0); got != "" {
		t.Fatalf("zero distance: got %q, want empty", got)
	}
}

func TestInferLabel(t *testing.T) {
	if got := InferLabel(page.Lines, surface.FieldInfo{Label: " Topic "}, 3); got != "Topic" {
		t.Fatalf("explicit: got %q", got)
	}
	if got := InferLabel(page.Lines, surface.FieldInfo{}, 3); got != "Subject" {
		t.Fatalf("preceding line: got %q", got)
	}
	if got := InferLabel(page.Lines, surface.FieldInfo{}, 5); got != "" {
		t.Fatalf("out of reach: got %q", got)
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := &Extractor{MaxDistance: 1}
	got := e.Extract(page, surface.FieldInfo{Placeholder: "Type here", Name: "subject", Type: "text"}, 3)
	want := Snapshot{
		Title:            "Contact us",
		Description:      "Send a message to support",
		NearbyText:       "Subject: We reply within a day",
		InputLabel:       "Subject",
		InputPlaceholder: "Type here",
		InputName:        "subject",
		InputType:        "text",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extract:\n got %+v\nwant %+v", got, want)
	}
}

func TestLuaHook_Enrich(t *testing.T) {
	h, err := NewLuaHook(`
function enrich(ctx)
  if ctx.input_name == "subject" then
    return { description = "Email subject for " .. ctx.title }
  end
end`)
	if err != nil {
		t.Fatalf("NewLuaHook: %v", err)
	}
	defer h.Close()

	e := &Extractor{Hook: h}
	got := e.Extract(page, surface.FieldInfo{Name: "subject"}, 3)
	if got.Description != "Email subject for Contact us" {
		t.Fatalf("description: got %q", got.Description)
	}
	if got.InputLabel != "Subject" {
		t.Fatalf("untouched fields must survive: %+v", got)
	}

	got = e.Extract(page, surface.FieldInfo{Name: "body"}, 3)
	if got.Description != "Send a message to support" {
		t.Fatalf("nil return should keep snapshot: %+v", got)
	}
}

func TestLuaHook_ErrorsFallBack(t *testing.T) {
	h, err := NewLuaHook(`function enrich(ctx) error("boom") end`)
	if err != nil {
		t.Fatalf("NewLuaHook: %v", err)
	}
	defer h.Close()

	e := &Extractor{Hook: h}
	got := e.Extract(page, surface.FieldInfo{}, 3)
	if got.Title != "Contact us" {
		t.Fatalf("failing hook should return unmodified snapshot: %+v", got)
	}
}

func TestNewLuaHook_Invalid(t *testing.T) {
	if _, err := NewLuaHook(`x = 1`); err == nil {
		t.Fatalf("expected error for missing enrich")
	}
	if _, err := NewLuaHook(`function (`); err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, err := NewLuaHook(`function enrich() return dofile("x") end`); err != nil {
		t.Fatalf("loading should succeed: %v", err)
	}
}

func TestLoadLuaHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrich.lua")
	script := `function enrich(ctx) return { input_type = "email" } end`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatal(err)
	}
	h, err := LoadLuaHook(path)
	if err != nil {
		t.Fatalf("LoadLuaHook: %v", err)
	}
	defer h.Close()

	if got := (&Extractor{Hook: h}).Extract(page, surface.FieldInfo{}, 3); got.InputType != "email" {
		t.Fatalf("input type: got %q", got.InputType)
	}
	if _, err := LoadLuaHook(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
