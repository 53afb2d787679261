package costing

import (
	"math"
	"testing"

	"remodel_calc/internal/domain/entities"
)

func TestResolveUnits(t *testing.T) {
	cases := []struct {
		name     string
		surface  entities.Surface
		want     float64
		warnings int
	}{
		{name: "linear foot", surface: entities.Surface{MeasurementType: entities.MeasurementLinearFoot, LinearFt: 12.5, Sqft: 99}, want: 12.5},
		{name: "by unit prefers units", surface: entities.Surface{MeasurementType: entities.MeasurementByUnit, Units: 4, Sqft: 80}, want: 4},
		{name: "by unit falls back to sqft", surface: entities.Surface{MeasurementType: entities.MeasurementByUnit, Sqft: 80}, want: 80},
		{name: "by unit with nothing", surface: entities.Surface{MeasurementType: entities.MeasurementByUnit}, want: 0, warnings: 1},
		{name: "single surface", surface: entities.Surface{MeasurementType: entities.MeasurementSingleSurface, Sqft: 100, LinearFt: 7}, want: 100},
		{name: "room surface", surface: entities.Surface{MeasurementType: entities.MeasurementRoomSurface, Sqft: 240, Width: 10, Length: 12}, want: 240},
		{name: "unknown type", surface: entities.Surface{MeasurementType: "volume", Sqft: 100}, want: 0, warnings: 1},
		{name: "empty type", surface: entities.Surface{Sqft: 100}, want: 0, warnings: 1},
		{name: "negative sqft", surface: entities.Surface{MeasurementType: entities.MeasurementSingleSurface, Sqft: -3}, want: 0, warnings: 1},
		{name: "nan linear feet", surface: entities.Surface{MeasurementType: entities.MeasurementLinearFoot, LinearFt: math.NaN()}, want: 0, warnings: 1},
		{name: "infinite units", surface: entities.Surface{MeasurementType: entities.MeasurementByUnit, Units: math.Inf(1)}, want: 0, warnings: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ws := ResolveUnits(tc.surface)
			if got != tc.want {
				t.Fatalf("expected %v units, got %v", tc.want, got)
			}
			if len(ws) != tc.warnings {
				t.Fatalf("expected %d warnings, got %+v", tc.warnings, ws)
			}
		})
	}
}

func TestResolveUnits_LinearFootWithoutValue(t *testing.T) {
	got, ws := ResolveUnits(entities.Surface{MeasurementType: entities.MeasurementLinearFoot})
	if got != 0 {
		t.Fatalf("expected 0 units, got %v", got)
	}
	if len(ws) != 1 || ws[0].Code != WarnDefaulted || ws[0].Path != "surface.linearFt" {
		t.Fatalf("expected a defaulted linearFt warning, got %+v", ws)
	}
}

func TestResolveUnits_UnknownMeasurementWarning(t *testing.T) {
	_, ws := ResolveUnits(entities.Surface{MeasurementType: "volume"})
	if len(ws) != 1 || ws[0].Code != WarnUnknownMeasurement {
		t.Fatalf("expected unknown measurement warning, got %+v", ws)
	}
}

func TestWorkItemUnits(t *testing.T) {
	t.Run("sums surfaces of mixed types", func(t *testing.T) {
		item := entities.WorkItem{
			Type: "trim",
			Surfaces: []entities.Surface{
				{MeasurementType: entities.MeasurementLinearFoot, LinearFt: 10},
				{MeasurementType: entities.MeasurementByUnit, Units: 2},
				{MeasurementType: "bogus", Sqft: 1000},
			},
		}
		got, ws := WorkItemUnits(item)
		if got != 12 {
			t.Fatalf("expected 12, got %v", got)
		}
		if len(ws) != 1 || ws[0].Path != "workItem.surfaces[2]" {
			t.Fatalf("unexpected warnings: %+v", ws)
		}
	})

	t.Run("no surfaces", func(t *testing.T) {
		got, ws := WorkItemUnits(entities.WorkItem{Type: "paint"})
		if got != 0 || len(ws) != 0 {
			t.Fatalf("expected 0 with no warnings, got %v %+v", got, ws)
		}
	})

	t.Run("missing type zeroes the whole item", func(t *testing.T) {
		item := entities.WorkItem{Surfaces: []entities.Surface{{MeasurementType: entities.MeasurementSingleSurface, Sqft: 100}}}
		got, ws := WorkItemUnits(item)
		if got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
		if len(ws) != 1 || ws[0].Code != WarnMissingType {
			t.Fatalf("expected missing type warning, got %+v", ws)
		}
	})
}
