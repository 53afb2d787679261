package export

import (
	"bytes"
	"testing"
	"time"

	"remodel_calc/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

var generatedAt = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func exportProject() entities.Project {
	return entities.Project{
		ID: "p-1",
		CustomerInfo: entities.CustomerInfo{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Street:      "1 Main St",
			State:       "IL",
			ZipCode:     "60601",
			ProjectName: "Living room refresh",
			StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		Categories: []entities.Category{{
			Name: "Living room",
			WorkItems: []entities.WorkItem{{
				Name:         "Paint",
				Type:         "painting",
				MaterialCost: 2,
				LaborCost:    3,
				UnitType:     entities.UnitTypeSqft,
				Surfaces:     []entities.Surface{{MeasurementType: entities.MeasurementSingleSurface, Sqft: 100}},
			}},
		}},
		Settings: entities.Settings{
			Payments: []entities.Payment{
				{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Amount: 50, Method: entities.PaymentMethodZelle, Status: entities.PaymentStatusPaid, Note: "Deposit payment", IsPaid: true},
			},
			TotalPaid:       50,
			AmountRemaining: 540,
		},
		Breakdown: entities.CostBreakdown{MaterialCost: 200, LaborCost: 300, BaseSubtotal: 500, Tax: 40, MiscFeesTotal: 50, Total: 590},
	}
}

func TestEstimateWorkbook(t *testing.T) {
	f, err := EstimateWorkbook(exportProject(), generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 || got[0] != SheetSummary || got[1] != SheetWorkItems || got[2] != SheetPayments {
		t.Fatalf("unexpected sheets: %v", got)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "A1", "Living room refresh"},
		{SheetSummary, "B4", "Ada Lovelace"},
		{SheetSummary, "B5", "1 Main St, IL, 60601"},
		{SheetSummary, "B9", "2024-06-01"},
		{SheetSummary, "A12", "Line"},
		{SheetSummary, "A23", "Total"},
		{SheetWorkItems, "B2", "Paint"},
		{SheetWorkItems, "F2", "sqft"},
		{SheetPayments, "B2", "Zelle"},
		{SheetPayments, "D2", "Paid"},
		{SheetPayments, "A3", "Total paid"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("%s!%s: %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Fatalf("%s!%s: expected %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}

	raw := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "B23", "590"},
		{SheetWorkItems, "E2", "100"},
		{SheetWorkItems, "I2", "200"},
		{SheetWorkItems, "J2", "300"},
		{SheetPayments, "C3", "50"},
	}
	for _, c := range raw {
		got, err := f.GetCellValue(c.sheet, c.cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("%s!%s: %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Fatalf("%s!%s: expected %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}
}

func TestEstimateWorkbook_WritesValidFile(t *testing.T) {
	f, err := EstimateWorkbook(entities.Project{ID: "p-2"}, generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	reopened, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got, _ := reopened.GetCellValue(SheetSummary, "A1"); got != "Remodel estimate" {
		t.Fatalf("expected default title, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	p := exportProject()
	if got := Filename(p, generatedAt); got != "Living_room_refresh_20240615_120000.xlsx" {
		t.Fatalf("unexpected filename: %q", got)
	}
	p.CustomerInfo.ProjectName = "  "
	if got := Filename(p, generatedAt); got != "estimate_p-1_20240615_120000.xlsx" {
		t.Fatalf("unexpected fallback filename: %q", got)
	}
}
