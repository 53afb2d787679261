package costing

import (
	"math"

	"remodel_calc/internal/domain/entities"
)

// measurement returns the authoritative value of s and the field it came from.
// known is false for unrecognized measurement types.
func measurement(s entities.Surface) (value float64, field string, known bool) {
	switch s.MeasurementType {
	case entities.MeasurementLinearFoot:
		return s.LinearFt, "linearFt", true
	case entities.MeasurementByUnit:
		if s.Units > 0 {
			return s.Units, "units", true
		}
		return s.Sqft, "sqft", true
	case entities.MeasurementSingleSurface, entities.MeasurementRoomSurface:
		return s.Sqft, "sqft", true
	default:
		return 0, "", false
	}
}

// ResolveUnits returns the unit count of a single surface. It never fails and
// never returns a negative or non-finite number.
func ResolveUnits(s entities.Surface) (float64, []Warning) {
	var ws warnings
	units := resolveUnits(s, "surface", &ws)
	return units, ws
}

func resolveUnits(s entities.Surface, path string, ws *warnings) float64 {
	v, field, known := measurement(s)
	if !known {
		ws.add(WarnUnknownMeasurement, path, "measurement type %q is not recognized; surface contributes 0 units", s.MeasurementType)
		return 0
	}
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		ws.add(WarnDefaulted, path+"."+field, "non-numeric measurement read as 0")
		return 0
	case v < 0:
		ws.add(WarnDefaulted, path+"."+field, "negative measurement %v read as 0", v)
		return 0
	case v == 0:
		ws.add(WarnDefaulted, path+"."+field, "no %s measurement; surface contributes 0 units", field)
		return 0
	}
	return v
}

// WorkItemUnits sums ResolveUnits over the item's surfaces. An item without a
// type resolves to 0 as a whole.
func WorkItemUnits(item entities.WorkItem) (float64, []Warning) {
	var ws warnings
	units := workItemUnits(item, "workItem", &ws)
	return units, ws
}

func workItemUnits(item entities.WorkItem, path string, ws *warnings) float64 {
	if item.Type == "" {
		ws.add(WarnMissingType, path+".type", "work item has no type; contributes 0 units")
		return 0
	}
	total := 0.0
	for i, s := range item.Surfaces {
		total += resolveUnits(s, indexPath(path+".surfaces", i), ws)
	}
	return total
}
