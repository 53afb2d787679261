package costing

import (
	"math"
	"strings"
	"time"

	"remodel_calc/internal/domain/entities"
)

const (
	// MinPaymentAmount is the smallest amount kept in a ledger. Anything
	// smaller is treated as rounding noise.
	MinPaymentAmount = 0.01

	DepositNote = "Deposit payment"
)

// dateLayouts are tried in order when reading a raw payment date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Clock supplies the current time to status derivation.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// RawPayment is a caller-supplied payment after numeric/boolean coercion but
// before normalization. Date is kept as text so unparsable dates can default.
// ProviderPaymentID links an entry already settled through the payment
// gateway and survives re-submission.
type RawPayment struct {
	Date              string
	Amount            float64
	Method            string
	Note              string
	IsPaid            bool
	ProviderPaymentID string
}

// Ledger is the normalized payment list plus its totals.
type Ledger struct {
	Entries   []entities.Payment
	TotalPaid float64
	AmountDue float64
	Warnings  []Warning
}

type LedgerParser struct {
	clock Clock
}

// NewLedgerParser returns a parser reading "now" from clock. A nil clock
// means SystemClock.
func NewLedgerParser(clock Clock) *LedgerParser {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LedgerParser{clock: clock}
}

// Parse builds the ledger: the deposit entry first (when there is one), then
// every kept raw payment in input order. While a deposit is synthesized, raw
// entries that repeat it (paid, note DepositNote) are skipped so a ledger sent
// back unchanged keeps exactly one deposit entry.
func (p *LedgerParser) Parse(raw []RawPayment, deposit float64, depositMethod string) Ledger {
	now := p.clock.Now()
	var ws warnings
	entries := make([]entities.Payment, 0, len(raw)+1)

	hasDeposit := false
	if amount, ok := keepAmount(deposit, "settings.deposit", &ws); ok {
		method, known := entities.ParsePaymentMethod(strings.TrimSpace(depositMethod))
		if !known {
			method = entities.PaymentMethodDeposit
		}
		entries = append(entries, entities.Payment{
			Date:   now,
			Amount: amount,
			Method: method,
			Note:   DepositNote,
			IsPaid: true,
			Status: entities.PaymentStatusPaid,
		})
		hasDeposit = true
	}

	for i, r := range raw {
		path := indexPath("settings.payments", i)
		if hasDeposit && isDepositEcho(r) {
			ws.add(WarnDepositEcho, path, "entry repeats the deposit and was skipped")
			continue
		}
		amount, ok := keepAmount(r.Amount, path+".amount", &ws)
		if !ok {
			continue
		}
		method, known := entities.ParsePaymentMethod(strings.TrimSpace(r.Method))
		if !known {
			method = entities.PaymentMethodCash
		}
		date := parseDate(r.Date, now)
		entries = append(entries, entities.Payment{
			Date:   date,
			Amount: amount,
			Method: method,
			Note:   r.Note,
			IsPaid: r.IsPaid,
			Status: DeriveStatus(r.IsPaid, date, now),

			ProviderPaymentID: strings.TrimSpace(r.ProviderPaymentID),
		})
	}

	totalPaid, amountDue := Tally(entries)
	return Ledger{Entries: entries, TotalPaid: totalPaid, AmountDue: amountDue, Warnings: ws}
}

func isDepositEcho(r RawPayment) bool {
	return r.IsPaid && strings.TrimSpace(r.Note) == DepositNote
}

// keepAmount coerces v and reports whether it clears MinPaymentAmount.
// Exactly zero is dropped without a warning.
func keepAmount(v float64, path string, ws *warnings) (float64, bool) {
	v = finiteOrZero(v, path, ws)
	switch {
	case v == 0:
		return 0, false
	case v < 0:
		ws.add(WarnNegativeAmount, path, "negative amount %v dropped", v)
		return 0, false
	case v < MinPaymentAmount:
		ws.add(WarnBelowMinimum, path, "amount %v is below the %.2f minimum and was dropped", v, MinPaymentAmount)
		return 0, false
	}
	return v, true
}

func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now
}

// DeriveStatus: paid entries are Paid; unpaid ones are Overdue once their
// date is strictly in the past, Pending otherwise.
func DeriveStatus(isPaid bool, date, now time.Time) entities.PaymentStatus {
	switch {
	case isPaid:
		return entities.PaymentStatusPaid
	case date.Before(now):
		return entities.PaymentStatusOverdue
	default:
		return entities.PaymentStatusPending
	}
}

// Tally sums paid and unpaid amounts over normalized entries.
func Tally(entries []entities.Payment) (totalPaid, amountDue float64) {
	for _, e := range entries {
		if e.IsPaid {
			totalPaid += e.Amount
		} else {
			amountDue += e.Amount
		}
	}
	return totalPaid, amountDue
}

// AmountRemaining is what the customer still owes against total, never
// negative.
func AmountRemaining(total, totalPaid float64) float64 {
	return math.Max(0, total-totalPaid)
}
