package costing

import (
	"math"
	"strconv"

	"remodel_calc/internal/domain/entities"
)

// Aggregate prices every work item and applies the adjustment chain.
//
// The order is fixed: labor discount comes off labor first, then waste, tax
// and markup are each a fraction of the same base subtotal, then flat fees
// are added. Missing or non-numeric item costs and fee amounts count as 0.
// Settings fractions are used as given, so a NaN there surfaces in Total.
func Aggregate(categories []entities.Category, settings entities.Settings) (entities.CostBreakdown, []Warning) {
	var ws warnings
	var b entities.CostBreakdown

	for ci, category := range categories {
		catPath := indexPath("categories", ci)
		for wi, item := range category.WorkItems {
			path := indexPath(catPath+".workItems", wi)
			units := workItemUnits(item, path, &ws)
			b.MaterialCost += finiteOrZero(item.MaterialCost, path+".materialCost", &ws) * units
			b.LaborCost += finiteOrZero(item.LaborCost, path+".laborCost", &ws) * units
		}
	}

	b.LaborDiscountAmount = b.LaborCost * settings.LaborDiscount
	b.DiscountedLaborCost = b.LaborCost - b.LaborDiscountAmount
	b.BaseSubtotal = b.MaterialCost + b.DiscountedLaborCost

	b.WasteCost = b.BaseSubtotal * settings.WasteFactor
	b.Tax = b.BaseSubtotal * settings.TaxRate
	b.MarkupCost = b.BaseSubtotal * settings.Markup

	for i, fee := range settings.MiscFees {
		b.MiscFeesTotal += finiteOrZero(fee.Amount, indexPath("settings.miscFees", i)+".amount", &ws)
	}
	b.TransportationFee = settings.TransportationFee

	b.Total = b.BaseSubtotal + b.WasteCost + b.Tax + b.MarkupCost + b.MiscFeesTotal + b.TransportationFee
	return b, ws
}

func finiteOrZero(v float64, path string, ws *warnings) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		ws.add(WarnDefaulted, path, "non-numeric value read as 0")
		return 0
	}
	return v
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
