package payment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InTx(ctx context.Context, fn func(payments.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetEstablishment(ctx context.Context, id uint) (*models.Establishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Establishment), args.Error(1)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) GetPaymentByProviderIDForUpdate(ctx context.Context, providerPaymentID string) (*models.Payment, error) {
	args := m.Called(ctx, providerPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) ListPendingDebts(ctx context.Context, establishmentID, userID uint) ([]models.UserDebt, error) {
	args := m.Called(ctx, establishmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserDebt), args.Error(1)
}

func (m *MockRepository) MarkDebtsPaid(ctx context.Context, ids []uint, paidAt time.Time) error {
	args := m.Called(ctx, ids, paidAt)
	return args.Error(0)
}

func (m *MockRepository) ReducePlatformFees(ctx context.Context, establishmentID uint, amount float64) error {
	args := m.Called(ctx, establishmentID, amount)
	return args.Error(0)
}

func (m *MockRepository) CreditWallet(ctx context.Context, userID uint, amount float64, txType, description, referenceID string) error {
	args := m.Called(ctx, userID, amount, txType, description, referenceID)
	return args.Error(0)
}

func (m *MockRepository) WithdrawWallet(ctx context.Context, userID uint, amount float64, description, referenceID string) error {
	args := m.Called(ctx, userID, amount, description, referenceID)
	return args.Error(0)
}

// --------------------------------------------------
// Provedor
// --------------------------------------------------

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "stripe"
}

func (m *MockProvider) CreateIntent(ctx context.Context, in payments.CreateIntentInput) (*payments.Intent, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *MockProvider) ResolveWebhook(ctx context.Context, body []byte, headers map[string]string) (*payments.WebhookEvent, error) {
	args := m.Called(ctx, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.WebhookEvent), args.Error(1)
}

func (m *MockProvider) Refund(ctx context.Context, providerPaymentID string, amount float64) error {
	args := m.Called(ctx, providerPaymentID, amount)
	return args.Error(0)
}

type noopNotifier struct{}

func (noopNotifier) Notify(notification.Message) {}
