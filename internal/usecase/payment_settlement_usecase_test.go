package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"remodel_calc/internal/domain/entities"
	mock_interfaces "remodel_calc/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const validProviderPayload = `{"payment_method_id":"pix","payer":{"email":"buyer@example.com"}}`

func ledgerProject() entities.Project {
	return entities.Project{
		ID:        "p-1",
		UserID:    "user-1",
		Breakdown: entities.CostBreakdown{Total: 590},
		Settings: entities.Settings{
			Payments: []entities.Payment{
				{Amount: 50, Method: entities.PaymentMethodZelle, IsPaid: true, Status: entities.PaymentStatusPaid, Note: "Deposit payment"},
				{Amount: 200, Method: entities.PaymentMethodCredit, Status: entities.PaymentStatusOverdue, Date: testNow.Add(-48 * time.Hour)},
			},
			TotalPaid:       50,
			AmountDue:       200,
			AmountRemaining: 540,
		},
	}
}

func TestProjectUseCase_SettlePayment_Validations(t *testing.T) {
	cases := []struct {
		name    string
		index   int
		payload string
		gateway bool
		want    error
	}{
		{name: "index out of range", index: 2, payload: validProviderPayload, gateway: true, want: ErrPaymentNotFound},
		{name: "negative index", index: -1, payload: validProviderPayload, gateway: true, want: ErrPaymentNotFound},
		{name: "already paid", index: 0, payload: validProviderPayload, gateway: true, want: ErrPaymentAlreadyPaid},
		{name: "gateway not configured", index: 1, payload: validProviderPayload, want: ErrPaymentGatewayNotConfigured},
		{name: "payload not json", index: 1, payload: `{`, gateway: true, want: ErrInvalidProviderPayload},
		{name: "payload null", index: 1, payload: `null`, gateway: true, want: ErrInvalidProviderPayload},
		{name: "missing payment method", index: 1, payload: `{"payer":{"email":"a@b.c"}}`, gateway: true, want: ErrInvalidProviderPayload},
		{name: "missing payer", index: 1, payload: `{"payment_method_id":"pix"}`, gateway: true, want: ErrInvalidProviderPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIProjectRepository(ctrl)
			repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(ledgerProject(), nil)

			var uc *ProjectUseCase
			if tc.gateway {
				uc = NewProjectUseCase(repo, mock_interfaces.NewMockIPaymentGateway(ctrl), testClock())
			} else {
				uc = NewProjectUseCase(repo, nil, testClock())
			}

			_, err := uc.SettlePayment(context.Background(), "user-1", "p-1", tc.index, []byte(tc.payload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProjectUseCase_SettlePayment_ForeignProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProjectRepository(ctrl)
	uc := NewProjectUseCase(repo, mock_interfaces.NewMockIPaymentGateway(ctrl), testClock())

	repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(ledgerProject(), nil)

	_, err := uc.SettlePayment(context.Background(), "user-2", "p-1", 1, []byte(validProviderPayload))
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectUseCase_SettlePayment_Gateway(t *testing.T) {
	t.Run("gateway errors are classified", func(t *testing.T) {
		cases := []struct {
			msg  string
			want error
		}{
			{msg: `{"status":400,"error":"bad_request"}`, want: ErrPaymentGatewayBadRequest},
			{msg: `{"status":401,"error":"unauthorized"}`, want: ErrPaymentGatewayUnauthorized},
			{msg: `{"message":"Customer not found","code":2002}`, want: ErrPaymentGatewayCustomerNotFound},
		}
		for _, c := range cases {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockIProjectRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewProjectUseCase(repo, gateway, testClock())

			repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(ledgerProject(), nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(c.msg))

			_, err := uc.SettlePayment(context.Background(), "user-1", "p-1", 1, []byte(validProviderPayload))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			ctrl.Finish()
		}
	})

	t.Run("unclassified gateway error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewProjectUseCase(repo, gateway, testClock())

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(ledgerProject(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("timeout"))

		_, err := uc.SettlePayment(context.Background(), "user-1", "p-1", 1, []byte(validProviderPayload))
		if err == nil || err.Error() != "timeout" {
			t.Fatalf("expected timeout error, got %v", err)
		}
	})

	t.Run("rejected by provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewProjectUseCase(repo, gateway, testClock())

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(ledgerProject(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "rejected", json.RawMessage(`{}`), nil)

		_, err := uc.SettlePayment(context.Background(), "user-1", "p-1", 1, []byte(validProviderPayload))
		if !errors.Is(err, ErrPaymentNotApproved) {
			t.Fatalf("expected ErrPaymentNotApproved, got %v", err)
		}
	})

	t.Run("success moves the amount from due to paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewProjectUseCase(repo, gateway, testClock())

		original := ledgerProject()
		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(original, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("payload must be json: %v", err)
				}
				if req["transaction_amount"] != 200.0 {
					t.Fatalf("amount must come from the ledger, got %v", req["transaction_amount"])
				}
				if req["external_reference"] != "p-1:1" || req["payment_method_id"] != "pix" {
					t.Fatalf("unexpected payload: %s", payload)
				}
				return "mp-77", "approved", json.RawMessage(`{"id":77}`), nil
			},
		)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Project) (entities.Project, error) {
				entry := p.Settings.Payments[1]
				if !entry.IsPaid || entry.Status != entities.PaymentStatusPaid || entry.ProviderPaymentID != "mp-77" {
					t.Fatalf("entry must be settled: %+v", entry)
				}
				if p.Settings.TotalPaid != 250 || p.Settings.AmountDue != 0 || p.Settings.AmountRemaining != 340 {
					t.Fatalf("unexpected totals: %+v", p.Settings)
				}
				if !p.UpdatedAt.Equal(testNow) {
					t.Fatalf("expected clock timestamp, got %v", p.UpdatedAt)
				}
				return p, nil
			},
		)

		res, err := uc.SettlePayment(context.Background(), "user-1", "p-1", 1, []byte(`{"payment_method_id":"pix","payer":{"email":"buyer@example.com"},"transaction_amount":1}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Settings.TotalPaid != 250 {
			t.Fatalf("unexpected result: %+v", res.Settings)
		}
		if original.Settings.Payments[1].IsPaid {
			t.Fatalf("loaded project must not be mutated in place")
		}
	})
}
