package types

import (
	"testing"
	"time"
)

func TestSearchParamsIsBlank(t *testing.T) {
	tests := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{"empty", SearchParams{}, true},
		{"whitespace only", SearchParams{Crop: "  ", Trait: "\t"}, true},
		{"crop", SearchParams{Crop: "Rice"}, false},
		{"variety", SearchParams{Variety: "IR64"}, false},
		{"trait", SearchParams{Trait: "drought"}, false},
		{"geography", SearchParams{Geography: "South Asia"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.IsBlank(); got != tt.want {
				t.Errorf("IsBlank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchParamsFieldsOrder(t *testing.T) {
	p := SearchParams{Crop: "c", Variety: "v", Trait: "t", Geography: "g"}
	want := []string{"trait", "crop", "variety", "geography"}
	got := p.Fields()
	if len(got) != len(want) {
		t.Fatalf("len(Fields) = %d, want %d", len(got), len(want))
	}
	for i, f := range got {
		if f.Name != want[i] {
			t.Errorf("Fields()[%d].Name = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestResearchResultTotal(t *testing.T) {
	r := ResearchResult{
		Genes:   []Gene{{ID: "g1"}, {ID: "g2"}},
		QTLs:    []QTL{{ID: "q1"}},
		Markers: []Marker{{ID: "m1"}, {ID: "m2"}},
	}
	if got := r.Total(); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
	if got := (ResearchResult{}).Total(); got != 0 {
		t.Errorf("empty Total() = %d, want 0", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 15, 2, 123_000_000, time.FixedZone("CEST", 2*3600))
	if got, want := FormatTimestamp(ts), "2026-10-18T07:15:02.123Z"; got != want {
		t.Errorf("FormatTimestamp = %q, want %q", got, want)
	}
}
