package costing

import (
	"errors"
	"math"

	"remodel_calc/internal/domain/entities"
)

var ErrInvalidCostCalculation = errors.New("invalid cost calculations")

// Input is everything needed to price a project and reconcile its payments.
// Settings.Payments is ignored; raw entries come in Payments.
type Input struct {
	Categories []entities.Category
	Settings   entities.Settings
	Payments   []RawPayment
}

// Result is the merged outcome. Settings is a copy of the input settings with
// the ledger and computed totals filled in.
type Result struct {
	Breakdown entities.CostBreakdown
	Ledger    Ledger
	Settings  entities.Settings
	Warnings  []Warning
}

// Estimate aggregates costs, parses the ledger and merges both into settings.
// It fails with ErrInvalidCostCalculation when the total or the amount paid
// is not a finite number; no partial result is returned in that case.
func Estimate(in Input, parser *LedgerParser) (Result, error) {
	breakdown, costWarnings := Aggregate(in.Categories, in.Settings)
	ledger := parser.Parse(in.Payments, in.Settings.Deposit, in.Settings.DepositMethod)

	if !isFinite(breakdown.Total) || !isFinite(ledger.TotalPaid) {
		return Result{}, ErrInvalidCostCalculation
	}

	settings := in.Settings
	settings.Deposit = finite(settings.Deposit)
	settings.MiscFees = normalizeFees(settings.MiscFees)
	settings.Payments = ledger.Entries
	settings.TotalPaid = ledger.TotalPaid
	settings.AmountDue = ledger.AmountDue
	settings.AmountRemaining = AmountRemaining(breakdown.Total, ledger.TotalPaid)
	settings.LaborDiscountAmount = breakdown.LaborDiscountAmount
	settings.DiscountedLaborCost = breakdown.DiscountedLaborCost

	all := make([]Warning, 0, len(costWarnings)+len(ledger.Warnings))
	all = append(all, costWarnings...)
	all = append(all, ledger.Warnings...)

	return Result{
		Breakdown: breakdown,
		Ledger:    ledger,
		Settings:  settings,
		Warnings:  all,
	}, nil
}

// Resettle recomputes the settings totals after a ledger entry changed,
// without re-synthesizing the deposit.
func Resettle(settings entities.Settings, total float64) entities.Settings {
	settings.TotalPaid, settings.AmountDue = Tally(settings.Payments)
	settings.AmountRemaining = AmountRemaining(total, settings.TotalPaid)
	return settings
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
