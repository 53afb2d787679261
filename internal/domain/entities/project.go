package entities

import "time"

// MeasurementType tells which surface field is authoritative for its unit count.
//
//   - linear-foot: LinearFt
//   - by-unit: Units, falling back to Sqft
//   - single-surface / room-surface: Sqft
//
// Other numeric fields on a Surface are informational (derived by the UI) and
// are never read when costing.
type MeasurementType string

const (
	MeasurementLinearFoot    MeasurementType = "linear-foot"
	MeasurementByUnit        MeasurementType = "by-unit"
	MeasurementSingleSurface MeasurementType = "single-surface"
	MeasurementRoomSurface   MeasurementType = "room-surface"
)

func (m MeasurementType) Valid() bool {
	switch m {
	case MeasurementLinearFoot, MeasurementByUnit, MeasurementSingleSurface, MeasurementRoomSurface:
		return true
	}
	return false
}

type RoomShape string

const (
	RoomShapeRectangular RoomShape = "rectangular"
	RoomShapeOther       RoomShape = "other"
)

func (r RoomShape) Valid() bool {
	return r == RoomShapeRectangular || r == RoomShapeOther
}

// UnitType is display-only; pricing always uses the resolved units.
type UnitType string

const (
	UnitTypeSqft     UnitType = "sqft"
	UnitTypeLinearFt UnitType = "linear ft"
	UnitTypeUnits    UnitType = "units"
)

func (u UnitType) Valid() bool {
	switch u {
	case UnitTypeSqft, UnitTypeLinearFt, UnitTypeUnits:
		return true
	}
	return false
}

type CustomerType string

const (
	CustomerResidential CustomerType = "Residential"
	CustomerCommercial  CustomerType = "Commercial"
)

// Opening is a door, window or closet cut out of a room surface.
type Opening struct {
	Size   string  `json:"size,omitempty" dynamodbav:"size,omitempty"`
	Width  float64 `json:"width" dynamodbav:"width"`
	Height float64 `json:"height" dynamodbav:"height"`
	Area   float64 `json:"area" dynamodbav:"area"`
}

type Surface struct {
	MeasurementType MeasurementType `json:"measurementType" dynamodbav:"measurement_type"`
	Width           float64         `json:"width" dynamodbav:"width"`
	Height          float64         `json:"height" dynamodbav:"height"`
	Sqft            float64         `json:"sqft" dynamodbav:"sqft"`
	ManualSqft      bool            `json:"manualSqft" dynamodbav:"manual_sqft"`
	LinearFt        float64         `json:"linearFt" dynamodbav:"linear_ft"`
	Units           float64         `json:"units" dynamodbav:"units"`
	Length          float64         `json:"length" dynamodbav:"length"`
	RoomShape       RoomShape       `json:"roomShape" dynamodbav:"room_shape"`
	RoomHeight      float64         `json:"roomHeight" dynamodbav:"room_height"`
	Doors           []Opening       `json:"doors" dynamodbav:"doors"`
	Windows         []Opening       `json:"windows" dynamodbav:"windows"`
	Closets         []Opening       `json:"closets" dynamodbav:"closets"`
}

// WorkItem prices its surfaces at MaterialCost and LaborCost per unit.
type WorkItem struct {
	Name         string    `json:"name" dynamodbav:"name"`
	Type         string    `json:"type" dynamodbav:"type"`
	Subtype      string    `json:"subtype" dynamodbav:"subtype"`
	Surfaces     []Surface `json:"surfaces" dynamodbav:"surfaces"`
	MaterialCost float64   `json:"materialCost" dynamodbav:"material_cost"`
	LaborCost    float64   `json:"laborCost" dynamodbav:"labor_cost"`
	UnitType     UnitType  `json:"unitType" dynamodbav:"unit_type"`
	Notes        string    `json:"notes" dynamodbav:"notes"`
}

// IsCosted reports whether the item carries a per-unit price.
func (w WorkItem) IsCosted() bool {
	return w.MaterialCost > 0 || w.LaborCost > 0
}

type Category struct {
	Name      string     `json:"name" dynamodbav:"name"`
	WorkItems []WorkItem `json:"workItems" dynamodbav:"work_items"`
}

type CustomerInfo struct {
	FirstName   string        `json:"firstName" dynamodbav:"first_name"`
	LastName    string        `json:"lastName" dynamodbav:"last_name"`
	Street      string        `json:"street" dynamodbav:"street"`
	Unit        string        `json:"unit" dynamodbav:"unit"`
	State       string        `json:"state" dynamodbav:"state"`
	ZipCode     string        `json:"zipCode" dynamodbav:"zip_code"`
	Phone       string        `json:"phone" dynamodbav:"phone"`
	Email       string        `json:"email" dynamodbav:"email"`
	ProjectName string        `json:"projectName" dynamodbav:"project_name"`
	Type        CustomerType  `json:"type" dynamodbav:"type"`
	PaymentType PaymentMethod `json:"paymentType" dynamodbav:"payment_type"`
	StartDate   time.Time     `json:"startDate" dynamodbav:"start_date"`
	FinishDate  *time.Time    `json:"finishDate,omitempty" dynamodbav:"finish_date,omitempty"`
	Notes       string        `json:"notes" dynamodbav:"notes"`
}

// Project is the persisted estimate aggregate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// Settings carries both the caller's adjustment configuration and the values
// computed from it; Breakdown keeps every aggregation intermediate for audit.
type Project struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	CustomerInfo CustomerInfo  `json:"customerInfo"`
	Categories   []Category    `json:"categories"`
	Settings     Settings      `json:"settings"`
	Breakdown    CostBreakdown `json:"breakdown"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
