package request

import (
	"strings"
	"time"

	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/domain/entities"
	"remodel_calc/internal/usecase"
)

const defaultState = "IL"

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

type OpeningRequest struct {
	Size   string `json:"size"`
	Width  Number `json:"width"`
	Height Number `json:"height"`
	Area   Number `json:"area"`
}

type SurfaceRequest struct {
	MeasurementType string           `json:"measurementType"`
	Width           Number           `json:"width"`
	Height          Number           `json:"height"`
	Sqft            Number           `json:"sqft"`
	ManualSqft      Flag             `json:"manualSqft"`
	LinearFt        Number           `json:"linearFt"`
	Units           Number           `json:"units"`
	Length          Number           `json:"length"`
	RoomShape       string           `json:"roomShape"`
	RoomHeight      Number           `json:"roomHeight"`
	Doors           []OpeningRequest `json:"doors"`
	Windows         []OpeningRequest `json:"windows"`
	Closets         []OpeningRequest `json:"closets"`
}

type WorkItemRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Subtype      string           `json:"subtype"`
	Surfaces     []SurfaceRequest `json:"surfaces"`
	MaterialCost Number           `json:"materialCost"`
	LaborCost    Number           `json:"laborCost"`
	UnitType     string           `json:"unitType"`
	Notes        string           `json:"notes"`
}

type CategoryRequest struct {
	Name      string            `json:"name"`
	WorkItems []WorkItemRequest `json:"workItems"`
}

type MiscFeeRequest struct {
	Name   string `json:"name"`
	Amount Number `json:"amount"`
}

// PaymentRequest is one ledger entry as submitted. Status is never read;
// it is derived from IsPaid and Date.
type PaymentRequest struct {
	Date              string `json:"date"`
	Amount            Number `json:"amount"`
	Method            string `json:"method"`
	Note              string `json:"note"`
	IsPaid            Flag   `json:"isPaid"`
	ProviderPaymentID string `json:"providerPaymentId"`
}

// SettingsRequest carries the adjustment configuration. Computed totals sent
// back by clients are ignored.
type SettingsRequest struct {
	TaxRate           Number           `json:"taxRate"`
	TransportationFee Number           `json:"transportationFee"`
	WasteFactor       Number           `json:"wasteFactor"`
	LaborDiscount     Number           `json:"laborDiscount"`
	Markup            Number           `json:"markup"`
	MiscFees          []MiscFeeRequest `json:"miscFees"`
	Deposit           Number           `json:"deposit"`
	DepositMethod     string           `json:"depositMethod"`
	Payments          []PaymentRequest `json:"payments"`
}

type CustomerInfoRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Street      string `json:"street"`
	Unit        string `json:"unit"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ProjectName string `json:"projectName"`
	Type        string `json:"type"`
	PaymentType string `json:"paymentType"`
	StartDate   string `json:"startDate"`
	FinishDate  string `json:"finishDate"`
	Notes       string `json:"notes"`
}

// QuoteRequest prices a project without saving it.
type QuoteRequest struct {
	Categories []CategoryRequest `json:"categories"`
	Settings   SettingsRequest   `json:"settings"`
}

// ProjectRequest is the body of project create and update.
type ProjectRequest struct {
	CustomerInfo CustomerInfoRequest `json:"customerInfo"`
	Categories   []CategoryRequest   `json:"categories"`
	Settings     SettingsRequest     `json:"settings"`
}

func (r QuoteRequest) ToInput() usecase.ProjectInput {
	settings, payments := r.Settings.toEntity()
	return usecase.ProjectInput{
		Categories: toCategories(r.Categories),
		Settings:   settings,
		Payments:   payments,
	}
}

func (r ProjectRequest) ToInput() usecase.ProjectInput {
	settings, payments := r.Settings.toEntity()
	return usecase.ProjectInput{
		CustomerInfo: r.CustomerInfo.toEntity(),
		Categories:   toCategories(r.Categories),
		Settings:     settings,
		Payments:     payments,
	}
}

func (r CustomerInfoRequest) toEntity() entities.CustomerInfo {
	c := entities.CustomerInfo{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Street:      strings.TrimSpace(r.Street),
		Unit:        strings.TrimSpace(r.Unit),
		State:       orDefault(r.State, defaultState),
		ZipCode:     strings.TrimSpace(r.ZipCode),
		Phone:       strings.TrimSpace(r.Phone),
		Email:       strings.TrimSpace(r.Email),
		ProjectName: strings.TrimSpace(r.ProjectName),
		Type:        entities.CustomerType(orDefault(r.Type, string(entities.CustomerResidential))),
		PaymentType: entities.PaymentMethod(orDefault(r.PaymentType, string(entities.PaymentMethodCash))),
		Notes:       r.Notes,
	}
	c.StartDate, _ = parseDate(r.StartDate)
	if finish, ok := parseDate(r.FinishDate); ok {
		c.FinishDate = &finish
	}
	return c
}

func (r SettingsRequest) toEntity() (entities.Settings, []costing.RawPayment) {
	s := entities.Settings{
		TaxRate:           r.TaxRate.Float(),
		TransportationFee: r.TransportationFee.Float(),
		WasteFactor:       r.WasteFactor.Float(),
		LaborDiscount:     r.LaborDiscount.Float(),
		Markup:            r.Markup.Float(),
		Deposit:           r.Deposit.Float(),
		DepositMethod:     strings.TrimSpace(r.DepositMethod),
	}
	if r.MiscFees != nil {
		s.MiscFees = make([]entities.MiscFee, len(r.MiscFees))
		for i, f := range r.MiscFees {
			s.MiscFees[i] = entities.MiscFee{Name: strings.TrimSpace(f.Name), Amount: f.Amount.Float()}
		}
	}

	var payments []costing.RawPayment
	if r.Payments != nil {
		payments = make([]costing.RawPayment, len(r.Payments))
		for i, p := range r.Payments {
			payments[i] = costing.RawPayment{
				Date:   p.Date,
				Amount: p.Amount.Float(),
				Method: p.Method,
				Note:   p.Note,
				IsPaid: bool(p.IsPaid),

				ProviderPaymentID: p.ProviderPaymentID,
			}
		}
	}
	return s, payments
}

func toCategories(in []CategoryRequest) []entities.Category {
	if in == nil {
		return nil
	}
	out := make([]entities.Category, len(in))
	for ci, c := range in {
		items := make([]entities.WorkItem, len(c.WorkItems))
		for wi, w := range c.WorkItems {
			items[wi] = entities.WorkItem{
				Name:         strings.TrimSpace(w.Name),
				Type:         strings.TrimSpace(w.Type),
				Subtype:      strings.TrimSpace(w.Subtype),
				Surfaces:     toSurfaces(w.Surfaces),
				MaterialCost: w.MaterialCost.Float(),
				LaborCost:    w.LaborCost.Float(),
				UnitType:     entities.UnitType(orDefault(w.UnitType, string(entities.UnitTypeSqft))),
				Notes:        w.Notes,
			}
		}
		out[ci] = entities.Category{Name: strings.TrimSpace(c.Name), WorkItems: items}
	}
	return out
}

func toSurfaces(in []SurfaceRequest) []entities.Surface {
	out := make([]entities.Surface, len(in))
	for i, s := range in {
		out[i] = entities.Surface{
			MeasurementType: entities.MeasurementType(strings.TrimSpace(s.MeasurementType)),
			Width:           s.Width.Float(),
			Height:          s.Height.Float(),
			Sqft:            s.Sqft.Float(),
			ManualSqft:      bool(s.ManualSqft),
			LinearFt:        s.LinearFt.Float(),
			Units:           s.Units.Float(),
			Length:          s.Length.Float(),
			RoomShape:       entities.RoomShape(orDefault(s.RoomShape, string(entities.RoomShapeRectangular))),
			RoomHeight:      s.RoomHeight.Float(),
			Doors:           toOpenings(s.Doors),
			Windows:         toOpenings(s.Windows),
			Closets:         toOpenings(s.Closets),
		}
	}
	return out
}

func toOpenings(in []OpeningRequest) []entities.Opening {
	if in == nil {
		return nil
	}
	out := make([]entities.Opening, len(in))
	for i, o := range in {
		out[i] = entities.Opening{Size: o.Size, Width: o.Width.Float(), Height: o.Height.Float(), Area: o.Area.Float()}
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
