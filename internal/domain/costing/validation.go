package costing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"remodel_calc/internal/domain/entities"
)

var ErrValidation = errors.New("validation failed")

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}

// ValidationError lists every rule a submission broke. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Details(), "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) Details() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.String()
	}
	return out
}

type fieldErrors []FieldError

func (fe *fieldErrors) add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ValidateWorkItem checks every surface's shape (known measurement type, no
// negative dimensions, known room shape) and rejects a priced item whose
// surfaces do not all carry a strictly positive authoritative measurement.
// Items priced at zero are exempt from the positive-measurement rule only.
func ValidateWorkItem(item entities.WorkItem) error {
	var fe fieldErrors
	validateWorkItem(item, "workItem", &fe)
	return fe.err()
}

func validateWorkItem(item entities.WorkItem, path string, fe *fieldErrors) {
	if strings.TrimSpace(item.Name) == "" {
		fe.add(path+".name", "is required")
	}
	if strings.TrimSpace(item.Type) == "" {
		fe.add(path+".type", "is required")
	}
	if item.MaterialCost < 0 {
		fe.add(path+".materialCost", "must not be negative")
	}
	if item.LaborCost < 0 {
		fe.add(path+".laborCost", "must not be negative")
	}
	if item.UnitType != "" && !item.UnitType.Valid() {
		fe.add(path+".unitType", "must be one of sqft, linear ft, units")
	}
	costed := item.IsCosted()
	if costed && len(item.Surfaces) == 0 {
		fe.add(path+".surfaces", "at least one surface is required when materialCost or laborCost is non-zero")
		return
	}
	for i, s := range item.Surfaces {
		sPath := indexPath(path+".surfaces", i)
		validateSurfaceShape(s, sPath, fe)
		v, field, known := measurement(s)
		if !costed || !known || v < 0 {
			continue
		}
		if !(v > 0) {
			if s.MeasurementType == entities.MeasurementByUnit {
				field = "units or sqft"
			}
			fe.add(sPath+"."+field, "must be greater than 0 when materialCost or laborCost is non-zero")
		}
	}
}

func validateSurfaceShape(s entities.Surface, path string, fe *fieldErrors) {
	if !s.MeasurementType.Valid() {
		fe.add(path+".measurementType", "must be one of linear-foot, by-unit, single-surface, room-surface")
	}
	dims := []struct {
		field string
		v     float64
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"sqft", s.Sqft},
		{"linearFt", s.LinearFt},
		{"units", s.Units},
		{"length", s.Length},
		{"roomHeight", s.RoomHeight},
	}
	for _, d := range dims {
		if d.v < 0 {
			fe.add(path+"."+d.field, "must not be negative")
		}
	}
	if s.RoomShape != "" && !s.RoomShape.Valid() {
		fe.add(path+".roomShape", "must be rectangular or other")
	}
}

// ValidateCategories applies ValidateWorkItem to every item and requires
// category names.
func ValidateCategories(categories []entities.Category) error {
	var fe fieldErrors
	validateCategories(categories, &fe)
	return fe.err()
}

func validateCategories(categories []entities.Category, fe *fieldErrors) {
	for ci, c := range categories {
		path := indexPath("categories", ci)
		if strings.TrimSpace(c.Name) == "" {
			fe.add(path+".name", "is required")
		}
		for wi, item := range c.WorkItems {
			validateWorkItem(item, indexPath(path+".workItems", wi), fe)
		}
	}
}

// ValidateSettings checks ranges only. NaN passes (every comparison is false)
// and is left for the cost calculation backstop.
func ValidateSettings(s entities.Settings) error {
	var fe fieldErrors
	validateSettings(s, &fe)
	return fe.err()
}

func validateSettings(s entities.Settings, fe *fieldErrors) {
	fractions := []struct {
		field string
		v     float64
	}{
		{"settings.taxRate", s.TaxRate},
		{"settings.wasteFactor", s.WasteFactor},
		{"settings.laborDiscount", s.LaborDiscount},
		{"settings.markup", s.Markup},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			fe.add(f.field, "must be between 0 and 1")
		}
	}
	if s.TransportationFee < 0 {
		fe.add("settings.transportationFee", "must not be negative")
	}
	if s.Deposit < 0 {
		fe.add("settings.deposit", "must not be negative")
	}
	for i, fee := range s.MiscFees {
		path := indexPath("settings.miscFees", i)
		if strings.TrimSpace(fee.Name) == "" {
			fe.add(path+".name", "is required")
		}
		if fee.Amount < 0 {
			fe.add(path+".amount", "must not be negative")
		}
	}
}

func ValidateCustomer(c entities.CustomerInfo) error {
	var fe fieldErrors
	validateCustomer(c, &fe)
	return fe.err()
}

func validateCustomer(c entities.CustomerInfo, fe *fieldErrors) {
	required := []struct {
		field string
		v     string
	}{
		{"customerInfo.firstName", c.FirstName},
		{"customerInfo.lastName", c.LastName},
		{"customerInfo.street", c.Street},
		{"customerInfo.phone", c.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.v) == "" {
			fe.add(r.field, "is required")
		}
	}
	if !zipCodePattern.MatchString(c.ZipCode) {
		fe.add("customerInfo.zipCode", "must be 5 digits")
	}
	if c.StartDate.IsZero() {
		fe.add("customerInfo.startDate", "is required")
	}
	switch c.Type {
	case entities.CustomerResidential, entities.CustomerCommercial:
	default:
		fe.add("customerInfo.type", "must be Residential or Commercial")
	}
	if _, ok := entities.ParsePaymentMethod(string(c.PaymentType)); !ok {
		fe.add("customerInfo.paymentType", "must be one of Credit, Debit, Check, Cash, Zelle")
	}
}

// ValidateProject runs every ruleset and reports all violations together.
func ValidateProject(customer entities.CustomerInfo, categories []entities.Category, settings entities.Settings) error {
	var fe fieldErrors
	validateCustomer(customer, &fe)
	validateCategories(categories, &fe)
	validateSettings(settings, &fe)
	return fe.err()
}
