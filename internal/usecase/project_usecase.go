package usecase

import (
	"context"
	"errors"
	"log"
	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/domain/entities"
	"remodel_calc/internal/usecase/interfaces"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidProjectID = errors.New("invalid project id")
	ErrInvalidUserID    = errors.New("invalid user id")
)

// ProjectInput is a submitted project after request decoding. Payments are
// the raw entries; Settings.Payments is ignored and rebuilt from them.
type ProjectInput struct {
	CustomerInfo entities.CustomerInfo
	Categories   []entities.Category
	Settings     entities.Settings
	Payments     []costing.RawPayment
}

func (in ProjectInput) estimateInput() costing.Input {
	return costing.Input{Categories: in.Categories, Settings: in.Settings, Payments: in.Payments}
}

// Quote is a priced estimate that has not been persisted.
type Quote struct {
	Breakdown entities.CostBreakdown
	Settings  entities.Settings
	Warnings  []costing.Warning
}

// IProjectUseCase exposes remodeling project operations.
//
// Every write runs the same pipeline: validate, price, parse the ledger,
// merge totals into settings, persist. Reads and writes are scoped to the
// calling user; another user's project is reported as not found.
type IProjectUseCase interface {
	Quote(ctx context.Context, in ProjectInput) (Quote, error)
	Create(ctx context.Context, userID string, in ProjectInput) (entities.Project, error)
	Update(ctx context.Context, userID, id string, in ProjectInput) (entities.Project, error)
	GetByID(ctx context.Context, userID, id string) (entities.Project, error)
	List(ctx context.Context, userID string) ([]entities.Project, error)
	Delete(ctx context.Context, userID, id string) error
	SettlePayment(ctx context.Context, userID, id string, index int, providerPayload []byte) (entities.Project, error)
}

type ProjectUseCase struct {
	repo    interfaces.IProjectRepository
	gateway interfaces.IPaymentGateway
	clock   costing.Clock
	ledger  *costing.LedgerParser
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

// NewProjectUseCase wires the use case. gateway may be nil, in which case
// SettlePayment fails with ErrPaymentGatewayNotConfigured; a nil clock means
// the system clock.
func NewProjectUseCase(repo interfaces.IProjectRepository, gateway interfaces.IPaymentGateway, clock costing.Clock) *ProjectUseCase {
	if clock == nil {
		clock = costing.SystemClock{}
	}
	return &ProjectUseCase{
		repo:    repo,
		gateway: gateway,
		clock:   clock,
		ledger:  costing.NewLedgerParser(clock),
	}
}

func (u *ProjectUseCase) Quote(ctx context.Context, in ProjectInput) (Quote, error) {
	if err := costing.ValidateCategories(in.Categories); err != nil {
		log.Printf("[project][usecase] quote rejected err=%v", err)
		return Quote{}, err
	}
	if err := costing.ValidateSettings(in.Settings); err != nil {
		log.Printf("[project][usecase] quote rejected err=%v", err)
		return Quote{}, err
	}

	res, err := u.estimate("quote", in)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Breakdown: res.Breakdown, Settings: res.Settings, Warnings: res.Warnings}, nil
}

func (u *ProjectUseCase) Create(ctx context.Context, userID string, in ProjectInput) (entities.Project, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Project{}, ErrInvalidUserID
	}
	if err := costing.ValidateProject(in.CustomerInfo, in.Categories, in.Settings); err != nil {
		log.Printf("[project][usecase] create rejected user_id=%s err=%v", userID, err)
		return entities.Project{}, err
	}

	res, err := u.estimate("create", in)
	if err != nil {
		return entities.Project{}, err
	}

	now := u.clock.Now().UTC()
	p := entities.Project{
		ID:           uuid.NewString(),
		UserID:       userID,
		CustomerInfo: in.CustomerInfo,
		Categories:   costing.NormalizeCategories(in.Categories),
		Settings:     res.Settings,
		Breakdown:    res.Breakdown,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[project][usecase] repository create failed user_id=%s err=%v", userID, err)
		return entities.Project{}, err
	}
	log.Printf("[project][usecase] created project_id=%s user_id=%s total=%.2f", created.ID, userID, created.Breakdown.Total)
	return created, nil
}

func (u *ProjectUseCase) Update(ctx context.Context, userID, id string, in ProjectInput) (entities.Project, error) {
	userID, id, err := normalizeIDs(userID, id)
	if err != nil {
		return entities.Project{}, err
	}
	if err := costing.ValidateProject(in.CustomerInfo, in.Categories, in.Settings); err != nil {
		log.Printf("[project][usecase] update rejected project_id=%s err=%v", id, err)
		return entities.Project{}, err
	}

	res, err := u.estimate("update", in)
	if err != nil {
		return entities.Project{}, err
	}

	p := entities.Project{
		ID:           id,
		UserID:       userID,
		CustomerInfo: in.CustomerInfo,
		Categories:   costing.NormalizeCategories(in.Categories),
		Settings:     res.Settings,
		Breakdown:    res.Breakdown,
		UpdatedAt:    u.clock.Now().UTC(),
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		log.Printf("[project][usecase] repository update failed project_id=%s err=%v", id, err)
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	log.Printf("[project][usecase] updated project_id=%s total=%.2f", id, updated.Breakdown.Total)
	return updated, nil
}

func (u *ProjectUseCase) GetByID(ctx context.Context, userID, id string) (entities.Project, error) {
	userID, id, err := normalizeIDs(userID, id)
	if err != nil {
		return entities.Project{}, err
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" || p.UserID != userID {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (u *ProjectUseCase) List(ctx context.Context, userID string) ([]entities.Project, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return u.repo.ListByUserID(ctx, userID)
}

func (u *ProjectUseCase) Delete(ctx context.Context, userID, id string) error {
	userID, id, err := normalizeIDs(userID, id)
	if err != nil {
		return err
	}

	deleted, err := u.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	log.Printf("[project][usecase] deleted project_id=%s", id)
	return nil
}

// estimate runs the costing pipeline and logs its warnings.
func (u *ProjectUseCase) estimate(op string, in ProjectInput) (costing.Result, error) {
	res, err := costing.Estimate(in.estimateInput(), u.ledger)
	if err != nil {
		log.Printf("[project][usecase] %s cost calculation failed err=%v", op, err)
		return costing.Result{}, err
	}
	for _, w := range res.Warnings {
		log.Printf("[project][usecase] %s warning %s", op, w)
	}
	return res, nil
}

func normalizeIDs(userID, id string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", "", ErrInvalidUserID
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", ErrInvalidProjectID
	}
	return userID, id, nil
}
