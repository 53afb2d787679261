package costing

import (
	"math"

	"remodel_calc/internal/domain/entities"
)

// NormalizeCategories returns a deep copy of categories with every
// non-finite number replaced by 0, matching how Aggregate reads them.
func NormalizeCategories(categories []entities.Category) []entities.Category {
	if categories == nil {
		return nil
	}
	out := make([]entities.Category, len(categories))
	for ci, c := range categories {
		items := make([]entities.WorkItem, len(c.WorkItems))
		for wi, item := range c.WorkItems {
			item.MaterialCost = finite(item.MaterialCost)
			item.LaborCost = finite(item.LaborCost)
			item.Surfaces = normalizeSurfaces(item.Surfaces)
			items[wi] = item
		}
		c.WorkItems = items
		out[ci] = c
	}
	return out
}

func normalizeSurfaces(surfaces []entities.Surface) []entities.Surface {
	if surfaces == nil {
		return nil
	}
	out := make([]entities.Surface, len(surfaces))
	for i, s := range surfaces {
		s.Width = finite(s.Width)
		s.Height = finite(s.Height)
		s.Sqft = finite(s.Sqft)
		s.LinearFt = finite(s.LinearFt)
		s.Units = finite(s.Units)
		s.Length = finite(s.Length)
		s.RoomHeight = finite(s.RoomHeight)
		s.Doors = normalizeOpenings(s.Doors)
		s.Windows = normalizeOpenings(s.Windows)
		s.Closets = normalizeOpenings(s.Closets)
		out[i] = s
	}
	return out
}

func normalizeOpenings(openings []entities.Opening) []entities.Opening {
	if openings == nil {
		return nil
	}
	out := make([]entities.Opening, len(openings))
	for i, o := range openings {
		o.Width = finite(o.Width)
		o.Height = finite(o.Height)
		o.Area = finite(o.Area)
		out[i] = o
	}
	return out
}

func normalizeFees(fees []entities.MiscFee) []entities.MiscFee {
	if fees == nil {
		return nil
	}
	out := make([]entities.MiscFee, len(fees))
	for i, f := range fees {
		f.Amount = finite(f.Amount)
		out[i] = f
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
