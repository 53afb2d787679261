package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/domain/entities"
	"strings"
)

const providerStatusApproved = "approved"

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrPaymentAlreadyPaid             = errors.New("payment already paid")
	ErrPaymentNotApproved             = errors.New("payment not approved by provider")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// SettlePayment charges the unpaid ledger entry at index through the payment
// gateway, marks it Paid and recomputes the project's paid/due/remaining
// totals. The charged amount is always the ledger amount, whatever the
// provider payload says.
func (u *ProjectUseCase) SettlePayment(ctx context.Context, userID, id string, index int, providerPayload []byte) (entities.Project, error) {
	log.Printf("[payment][usecase] settle start project_id=%q index=%d payload_len=%d", id, index, len(providerPayload))

	p, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Project{}, err
	}
	if index < 0 || index >= len(p.Settings.Payments) {
		log.Printf("[payment][usecase] no ledger entry project_id=%s index=%d entries=%d", p.ID, index, len(p.Settings.Payments))
		return entities.Project{}, ErrPaymentNotFound
	}
	entry := p.Settings.Payments[index]
	if entry.IsPaid {
		return entities.Project{}, ErrPaymentAlreadyPaid
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured project_id=%s", p.ID)
		return entities.Project{}, ErrPaymentGatewayNotConfigured
	}

	payload, err := buildChargePayload(providerPayload, p.ID, index, entry)
	if err != nil {
		log.Printf("[payment][usecase] invalid payload project_id=%s err=%v", p.ID, err)
		return entities.Project{}, err
	}

	providerID, providerStatus, _, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed project_id=%s err=%v", p.ID, err)
		return entities.Project{}, classifyGatewayError(err)
	}
	if !strings.EqualFold(providerStatus, providerStatusApproved) {
		log.Printf("[payment][usecase] payment not approved project_id=%s provider_payment_id=%s provider_status=%s", p.ID, providerID, providerStatus)
		return entities.Project{}, ErrPaymentNotApproved
	}

	entry.IsPaid = true
	entry.Status = entities.PaymentStatusPaid
	entry.ProviderPaymentID = providerID

	payments := append([]entities.Payment(nil), p.Settings.Payments...)
	payments[index] = entry
	p.Settings.Payments = payments
	p.Settings = costing.Resettle(p.Settings, p.Breakdown.Total)
	p.UpdatedAt = u.clock.Now().UTC()

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] repository update failed project_id=%s provider_payment_id=%s err=%v", p.ID, providerID, err)
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	log.Printf("[payment][usecase] settle success project_id=%s index=%d provider_payment_id=%s total_paid=%.2f", p.ID, index, providerID, updated.Settings.TotalPaid)
	return updated, nil
}

// buildChargePayload enriches the caller's provider payload with the ledger
// amount and a reference back to the project entry.
func buildChargePayload(raw []byte, projectID string, index int, entry entities.Payment) (json.RawMessage, error) {
	req := map[string]any{}
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil || req == nil {
			return nil, ErrInvalidProviderPayload
		}
	}
	if !hasNonEmptyString(req, "payment_method_id") {
		return nil, ErrInvalidProviderPayload
	}
	if !hasPayer(req) {
		return nil, ErrInvalidProviderPayload
	}

	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = fmt.Sprintf("%s:%d", projectID, index)
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Remodel project %s payment %d", projectID, index+1)
	}
	req["transaction_amount"] = entry.Amount

	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if hasNonEmptyString(payer, "email") {
		return true
	}
	id, ok := payer["id"]
	if !ok || id == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", id))
	return s != "" && s != "<nil>"
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
