package entities

type MiscFee struct {
	Name   string  `json:"name" dynamodbav:"name"`
	Amount float64 `json:"amount" dynamodbav:"amount"`
}

// Settings is the adjustment configuration of a project.
//
// TaxRate, WasteFactor, LaborDiscount and Markup are fractions in [0,1].
// TotalPaid, AmountDue, AmountRemaining, LaborDiscountAmount and
// DiscountedLaborCost are computed on every create/update and overwrite
// whatever the caller sent.
type Settings struct {
	TaxRate           float64   `json:"taxRate" dynamodbav:"tax_rate"`
	TransportationFee float64   `json:"transportationFee" dynamodbav:"transportation_fee"`
	WasteFactor       float64   `json:"wasteFactor" dynamodbav:"waste_factor"`
	LaborDiscount     float64   `json:"laborDiscount" dynamodbav:"labor_discount"`
	Markup            float64   `json:"markup" dynamodbav:"markup"`
	MiscFees          []MiscFee `json:"miscFees" dynamodbav:"misc_fees"`
	Deposit           float64   `json:"deposit" dynamodbav:"deposit"`
	DepositMethod     string    `json:"depositMethod" dynamodbav:"deposit_method"`
	Payments          []Payment `json:"payments" dynamodbav:"payments"`

	TotalPaid           float64 `json:"totalPaid" dynamodbav:"total_paid"`
	AmountDue           float64 `json:"amountDue" dynamodbav:"amount_due"`
	AmountRemaining     float64 `json:"amountRemaining" dynamodbav:"amount_remaining"`
	LaborDiscountAmount float64 `json:"laborDiscountAmount" dynamodbav:"labor_discount_amount"`
	DiscountedLaborCost float64 `json:"discountedLaborCost" dynamodbav:"discounted_labor_cost"`
}

// CostBreakdown is the itemized result of costing a project.
type CostBreakdown struct {
	MaterialCost        float64 `json:"materialCost" dynamodbav:"material_cost"`
	LaborCost           float64 `json:"laborCost" dynamodbav:"labor_cost"`
	LaborDiscountAmount float64 `json:"laborDiscountAmount" dynamodbav:"labor_discount_amount"`
	DiscountedLaborCost float64 `json:"discountedLaborCost" dynamodbav:"discounted_labor_cost"`
	BaseSubtotal        float64 `json:"baseSubtotal" dynamodbav:"base_subtotal"`
	WasteCost           float64 `json:"wasteCost" dynamodbav:"waste_cost"`
	Tax                 float64 `json:"tax" dynamodbav:"tax"`
	MarkupCost          float64 `json:"markupCost" dynamodbav:"markup_cost"`
	MiscFeesTotal       float64 `json:"miscFeesTotal" dynamodbav:"misc_fees_total"`
	TransportationFee   float64 `json:"transportationFee" dynamodbav:"transportation_fee"`
	Total               float64 `json:"total" dynamodbav:"total"`
}
