package entities

import "time"

// PaymentMethod is how a ledger entry was (or will be) paid.
//
// Deposit is only ever assigned to the synthesized deposit entry when the
// configured deposit method is not one of the regular methods.
type PaymentMethod string

const (
	PaymentMethodCredit  PaymentMethod = "Credit"
	PaymentMethodDebit   PaymentMethod = "Debit"
	PaymentMethodCheck   PaymentMethod = "Check"
	PaymentMethodCash    PaymentMethod = "Cash"
	PaymentMethodZelle   PaymentMethod = "Zelle"
	PaymentMethodDeposit PaymentMethod = "Deposit"
)

// PaymentMethods lists the methods a caller may submit.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCredit,
	PaymentMethodDebit,
	PaymentMethodCheck,
	PaymentMethodCash,
	PaymentMethodZelle,
}

// ParsePaymentMethod reports whether s names one of PaymentMethods.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// PaymentStatus is derived from IsPaid and the entry date, never supplied.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// Payment is one normalized ledger entry.
type Payment struct {
	Date   time.Time     `json:"date" dynamodbav:"date"`
	Amount float64       `json:"amount" dynamodbav:"amount"`
	Method PaymentMethod `json:"method" dynamodbav:"method"`
	Note   string        `json:"note" dynamodbav:"note"`
	IsPaid bool          `json:"isPaid" dynamodbav:"is_paid"`
	Status PaymentStatus `json:"status" dynamodbav:"status"`

	// ProviderPaymentID is set when the entry was settled through the
	// payment gateway.
	ProviderPaymentID string `json:"providerPaymentId,omitempty" dynamodbav:"provider_payment_id,omitempty"`
}
