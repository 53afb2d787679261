// Package costing prices a remodeling project and reconciles its payments.
//
// Everything here is a pure function of its arguments: no I/O, no globals, and
// "now" comes from an injected Clock. Recoverable input problems never fail a
// computation; they are reported as Warnings next to the result.
package costing

import "fmt"

// WarningCode classifies a non-fatal diagnostic.
type WarningCode string

const (
	// WarnDefaulted: a missing or non-numeric field was read as 0.
	WarnDefaulted WarningCode = "defaulted"
	// WarnUnknownMeasurement: a surface had an unrecognized measurement type
	// and contributed no units.
	WarnUnknownMeasurement WarningCode = "unknown_measurement"
	// WarnMissingType: a work item without a type contributed no units.
	WarnMissingType WarningCode = "missing_type"
	// WarnBelowMinimum: a payment or deposit under MinPaymentAmount was dropped.
	WarnBelowMinimum WarningCode = "below_minimum"
	// WarnNegativeAmount: a negative payment or deposit was dropped.
	WarnNegativeAmount WarningCode = "negative_amount"
	// WarnDepositEcho: a submitted payment repeating the synthesized deposit
	// entry was skipped.
	WarnDepositEcho WarningCode = "deposit_echo"
)

type Warning struct {
	Code    WarningCode `json:"code"`
	Path    string      `json:"path"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Code, w.Path, w.Message)
}

type warnings []Warning

func (ws *warnings) add(code WarningCode, path, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}
