package costing

import (
	"encoding/json"
	"math"
	"testing"

	"remodel_calc/internal/domain/entities"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func paintProject() []entities.Category {
	return []entities.Category{{
		Name: "Interior",
		WorkItems: []entities.WorkItem{{
			Name:         "Living room walls",
			Type:         "paint",
			MaterialCost: 2,
			LaborCost:    3,
			Surfaces:     []entities.Surface{{MeasurementType: entities.MeasurementSingleSurface, Sqft: 100}},
		}},
	}}
}

func TestAggregate_SingleItemWithTaxAndMarkup(t *testing.T) {
	b, ws := Aggregate(paintProject(), entities.Settings{TaxRate: 0.08, Markup: 0.1})
	if len(ws) != 0 {
		t.Fatalf("unexpected warnings: %+v", ws)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"materialCost", b.MaterialCost, 200},
		{"laborCost", b.LaborCost, 300},
		{"laborDiscountAmount", b.LaborDiscountAmount, 0},
		{"discountedLaborCost", b.DiscountedLaborCost, 300},
		{"baseSubtotal", b.BaseSubtotal, 500},
		{"wasteCost", b.WasteCost, 0},
		{"tax", b.Tax, 40},
		{"markupCost", b.MarkupCost, 50},
		{"total", b.Total, 590},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestAggregate_AdjustmentOrder(t *testing.T) {
	categories := []entities.Category{
		{
			Name: "Kitchen",
			WorkItems: []entities.WorkItem{
				{
					Name: "Backsplash", Type: "tile", MaterialCost: 10, LaborCost: 20,
					Surfaces: []entities.Surface{
						{MeasurementType: entities.MeasurementSingleSurface, Sqft: 30},
						{MeasurementType: entities.MeasurementRoomSurface, Sqft: 20},
					},
				},
				{
					Name: "Crown", Type: "trim", MaterialCost: 4, LaborCost: 6,
					Surfaces: []entities.Surface{{MeasurementType: entities.MeasurementLinearFoot, LinearFt: 25}},
				},
			},
		},
		{
			Name: "Bath",
			WorkItems: []entities.WorkItem{{
				Name: "Fixtures", Type: "plumbing", LaborCost: 150,
				Surfaces: []entities.Surface{{MeasurementType: entities.MeasurementByUnit, Units: 3}},
			}},
		},
	}
	settings := entities.Settings{
		LaborDiscount:     0.1,
		WasteFactor:       0.05,
		TaxRate:           0.0625,
		Markup:            0.2,
		MiscFees:          []entities.MiscFee{{Name: "Permit", Amount: 75}, {Name: "Dumpster", Amount: 300}},
		TransportationFee: 120,
	}

	b, _ := Aggregate(categories, settings)

	// material: 10*50 + 4*25 = 600; labor: 20*50 + 6*25 + 150*3 = 1600
	if !approx(b.MaterialCost, 600) || !approx(b.LaborCost, 1600) {
		t.Fatalf("unexpected raw costs: %+v", b)
	}
	if !approx(b.LaborDiscountAmount, 160) || !approx(b.DiscountedLaborCost, 1440) {
		t.Fatalf("labor discount must apply to labor only: %+v", b)
	}
	if !approx(b.BaseSubtotal, 2040) {
		t.Fatalf("expected base subtotal 2040, got %v", b.BaseSubtotal)
	}
	if !approx(b.WasteCost, 102) || !approx(b.Tax, 127.5) || !approx(b.MarkupCost, 408) {
		t.Fatalf("waste/tax/markup must be fractions of the base subtotal: %+v", b)
	}
	if !approx(b.MiscFeesTotal, 375) || !approx(b.TransportationFee, 120) {
		t.Fatalf("unexpected fees: %+v", b)
	}
	sum := b.BaseSubtotal + b.WasteCost + b.Tax + b.MarkupCost + b.MiscFeesTotal + b.TransportationFee
	if b.Total != sum {
		t.Fatalf("total %v must equal the sum of its parts %v", b.Total, sum)
	}
	if !approx(b.Total, 3172.5) {
		t.Fatalf("expected total 3172.5, got %v", b.Total)
	}
}

func TestAggregate_NonNumericCostsReadAsZero(t *testing.T) {
	categories := paintProject()
	categories[0].WorkItems[0].MaterialCost = math.NaN()
	settings := entities.Settings{MiscFees: []entities.MiscFee{{Name: "odd", Amount: math.NaN()}, {Name: "ok", Amount: 10}}}

	b, ws := Aggregate(categories, settings)
	if !approx(b.MaterialCost, 0) || !approx(b.LaborCost, 300) || !approx(b.MiscFeesTotal, 10) {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	if len(ws) != 2 {
		t.Fatalf("expected 2 warnings, got %+v", ws)
	}
	if ws[0].Path != "categories[0].workItems[0].materialCost" || ws[1].Path != "settings.miscFees[0].amount" {
		t.Fatalf("unexpected warning paths: %+v", ws)
	}
}

func TestAggregate_NaNSettingPropagatesToTotal(t *testing.T) {
	b, _ := Aggregate(paintProject(), entities.Settings{TaxRate: math.NaN()})
	if !math.IsNaN(b.Total) {
		t.Fatalf("expected NaN total, got %v", b.Total)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	b, ws := Aggregate(nil, entities.Settings{TransportationFee: 50})
	if b.Total != 50 || b.BaseSubtotal != 0 || len(ws) != 0 {
		t.Fatalf("unexpected result: %+v %+v", b, ws)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	settings := entities.Settings{TaxRate: 0.07, WasteFactor: 0.1, LaborDiscount: 0.15, Markup: 0.12, TransportationFee: 40}

	first, _ := Aggregate(paintProject(), settings)
	second, _ := Aggregate(paintProject(), settings)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("expected identical output:\n%s\n%s", a, b)
	}
}
