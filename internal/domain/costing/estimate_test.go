package costing

import (
	"errors"
	"math"
	"testing"

	"remodel_calc/internal/domain/entities"
)

func TestEstimate_MergesLedgerIntoSettings(t *testing.T) {
	in := Input{
		Categories: paintProject(),
		Settings: entities.Settings{
			TaxRate:       0.08,
			Markup:        0.1,
			Deposit:       50,
			DepositMethod: "Zelle",
			Payments:      []entities.Payment{{Amount: 9999, IsPaid: true}},
		},
		Payments: []RawPayment{
			{Amount: 100, IsPaid: true, Method: "Cash"},
			{Amount: 200, IsPaid: false, Date: "2030-01-01"},
			{Amount: 0.005, IsPaid: true},
		},
	}

	res, err := Estimate(in, fixedParser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(res.Breakdown.Total, 590) {
		t.Fatalf("expected total 590, got %v", res.Breakdown.Total)
	}
	s := res.Settings
	if len(s.Payments) != 3 || s.Payments[0].Note != DepositNote {
		t.Fatalf("settings payments must be the normalized ledger: %+v", s.Payments)
	}
	if s.TotalPaid != 150 || s.AmountDue != 200 || !approx(s.AmountRemaining, 440) {
		t.Fatalf("unexpected totals: paid=%v due=%v remaining=%v", s.TotalPaid, s.AmountDue, s.AmountRemaining)
	}
	if s.LaborDiscountAmount != res.Breakdown.LaborDiscountAmount || s.DiscountedLaborCost != res.Breakdown.DiscountedLaborCost {
		t.Fatalf("labor intermediates must be copied into settings: %+v", s)
	}
	if s.TaxRate != 0.08 || s.DepositMethod != "Zelle" {
		t.Fatalf("configuration must be preserved: %+v", s)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != WarnBelowMinimum {
		t.Fatalf("expected ledger warning to be surfaced, got %+v", res.Warnings)
	}
	if in.Settings.Payments[0].Amount != 9999 {
		t.Fatalf("input settings must not be mutated")
	}
}

func TestEstimate_RejectsNaNTotal(t *testing.T) {
	in := Input{Categories: paintProject(), Settings: entities.Settings{Markup: math.NaN()}}
	res, err := Estimate(in, fixedParser())
	if !errors.Is(err, ErrInvalidCostCalculation) {
		t.Fatalf("expected ErrInvalidCostCalculation, got %v", err)
	}
	if res.Breakdown.Total != 0 || res.Settings.Payments != nil {
		t.Fatalf("no partial result on failure: %+v", res)
	}
}

func TestEstimate_RejectsInfiniteTotal(t *testing.T) {
	in := Input{Settings: entities.Settings{TransportationFee: math.Inf(1)}}
	if _, err := Estimate(in, fixedParser()); !errors.Is(err, ErrInvalidCostCalculation) {
		t.Fatalf("expected ErrInvalidCostCalculation, got %v", err)
	}
}

func TestEstimate_OverpaidClampsRemaining(t *testing.T) {
	in := Input{Categories: paintProject(), Settings: entities.Settings{Deposit: 1000}}
	res, err := Estimate(in, fixedParser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Settings.AmountRemaining != 0 {
		t.Fatalf("expected 0 remaining, got %v", res.Settings.AmountRemaining)
	}
}

func TestResettle(t *testing.T) {
	s := entities.Settings{Payments: []entities.Payment{
		{Amount: 50, IsPaid: true},
		{Amount: 200, IsPaid: true},
		{Amount: 75},
	}}
	got := Resettle(s, 590)
	if got.TotalPaid != 250 || got.AmountDue != 75 || got.AmountRemaining != 340 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}
