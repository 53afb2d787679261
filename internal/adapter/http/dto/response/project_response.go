package response

import (
	"time"

	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/domain/entities"
	"remodel_calc/internal/usecase"
)

type WarningResponse struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

type QuoteResponse struct {
	Breakdown entities.CostBreakdown `json:"breakdown"`
	Settings  entities.Settings      `json:"settings"`
	Warnings  []WarningResponse      `json:"warnings"`
}

type ProjectResponse struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"userId"`
	CustomerInfo entities.CustomerInfo  `json:"customerInfo"`
	Categories   []entities.Category    `json:"categories"`
	Settings     entities.Settings      `json:"settings"`
	Breakdown    entities.CostBreakdown `json:"breakdown"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// ProjectSummaryResponse is a list row.
type ProjectSummaryResponse struct {
	ID              string    `json:"id"`
	ProjectName     string    `json:"projectName"`
	CustomerName    string    `json:"customerName"`
	StartDate       time.Time `json:"startDate"`
	Total           float64   `json:"total"`
	TotalPaid       float64   `json:"totalPaid"`
	AmountRemaining float64   `json:"amountRemaining"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromQuote(q usecase.Quote) QuoteResponse {
	return QuoteResponse{
		Breakdown: q.Breakdown,
		Settings:  q.Settings,
		Warnings:  FromWarnings(q.Warnings),
	}
}

func FromWarnings(ws []costing.Warning) []WarningResponse {
	out := make([]WarningResponse, len(ws))
	for i, w := range ws {
		out[i] = WarningResponse{Code: string(w.Code), Path: w.Path, Message: w.Message}
	}
	return out
}

func FromProject(p entities.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		CustomerInfo: p.CustomerInfo,
		Categories:   nonNilCategories(p.Categories),
		Settings:     p.Settings,
		Breakdown:    p.Breakdown,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromProjectSummaries(ps []entities.Project) []ProjectSummaryResponse {
	out := make([]ProjectSummaryResponse, len(ps))
	for i, p := range ps {
		c := p.CustomerInfo
		out[i] = ProjectSummaryResponse{
			ID:              p.ID,
			ProjectName:     c.ProjectName,
			CustomerName:    joinName(c.FirstName, c.LastName),
			StartDate:       c.StartDate,
			Total:           p.Breakdown.Total,
			TotalPaid:       p.Settings.TotalPaid,
			AmountRemaining: p.Settings.AmountRemaining,
			UpdatedAt:       p.UpdatedAt,
		}
	}
	return out
}

func nonNilCategories(cs []entities.Category) []entities.Category {
	if cs == nil {
		return []entities.Category{}
	}
	return cs
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
