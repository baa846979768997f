package etro

import (
	"testing"

	"github.com/aventurescence/gearplan/pkg/catalog"
)

const sampleGearset = `{
  "name": "7.2 DRG BiS",
  "jobAbbrev": "DRG",
  "food": 7000,
  "weapon": 500,
  "head": 501,
  "fingerR": 510,
  "fingerL": 511,
  "materia": {
    "500": {"1": 9001, "2": 9002},
    "510R": {"1": 9003},
    "510": {"1": 9999},
    "511L": {"1": 9004}
  }
}`

func TestGearsetID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://etro.gg/gearset/abc-123", "abc-123"},
		{"https://etro.gg/gearset/abc-123/", "abc-123"},
		{"https://etro.gg/gearset/abc-123?tab=melds", "abc-123"},
		{"https://etro.gg/gearsets", ""},
	}
	for _, tt := range tests {
		if got := gearsetID(tt.url); got != tt.want {
			t.Fatalf("gearsetID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestParseGearset(t *testing.T) {
	gs, err := ParseGearset(sampleGearset)
	if err != nil {
		t.Fatalf("ParseGearset: %v", err)
	}
	if gs.Name != "7.2 DRG BiS" || gs.Job != "DRG" || gs.FoodID != 7000 {
		t.Fatalf("header fields wrong: %+v", gs)
	}
	if len(gs.Slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(gs.Slots))
	}

	bySlot := map[catalog.SlotID][5]uint32{}
	for _, e := range gs.Slots {
		bySlot[e.Slot] = e.Materia
	}
	if m := bySlot[catalog.SlotMainHand]; m[0] != 9001 || m[1] != 9002 {
		t.Fatalf("weapon melds = %v", m)
	}
	// Ring melds live under suffixed keys; the bare key must not shadow them.
	if m := bySlot[catalog.SlotRingR]; m[0] != 9003 {
		t.Fatalf("right ring melds = %v, want 9003 first", m)
	}
	if m := bySlot[catalog.SlotRingL]; m[0] != 9004 {
		t.Fatalf("left ring melds = %v, want 9004 first", m)
	}
	if m := bySlot[catalog.SlotHead]; m != [5]uint32{} {
		t.Fatalf("unmelded head should have zero melds, got %v", m)
	}
}

func TestParseGearsetErrors(t *testing.T) {
	if _, err := ParseGearset("not json"); err == nil {
		t.Fatalf("expected error on invalid JSON")
	}
	if _, err := ParseGearset(`{"name": "empty"}`); err == nil {
		t.Fatalf("expected error on gearset with no items")
	}
}

func TestMatch(t *testing.T) {
	p := &Provider{}
	if !p.Match("https://etro.gg/gearset/abc") {
		t.Fatalf("etro gearset url should match")
	}
	if p.Match("https://xivgear.app/?page=sl|abc") {
		t.Fatalf("foreign url should not match")
	}
}
