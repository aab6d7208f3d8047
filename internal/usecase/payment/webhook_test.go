package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

func successEvent(providerID string) *payments.WebhookEvent {
	return &payments.WebhookEvent{
		ProviderPaymentID: providerID,
		Status:            payments.StatusSucceeded,
	}
}

// Sucesso: pagamento marcado, dívidas quitadas, taxas abatidas e
// agendamento confirmado em uma transação.
func TestWebhookSuccessSettlesEverything(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	apID := uint(40)
	p := &models.Payment{
		ID:                9,
		UserID:            7,
		EstablishmentID:   1,
		AppointmentID:     &apID,
		Purpose:           models.PaymentPurposeAppointment,
		Provider:          "stripe",
		ProviderPaymentID: "pi_123",
		Amount:            95,
		Status:            models.PaymentPending,
		Metadata: models.JSONMap{
			"debt_ids":       "21,22",
			"recovered_fees": "18.50",
		},
	}

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(successEvent("pi_123"), nil)
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_123").Return(p, nil)
	repo.On("UpdatePayment", mock.Anything, mock.MatchedBy(func(up *models.Payment) bool {
		return up.Status == models.PaymentSucceeded
	})).Return(nil)
	repo.On("MarkDebtsPaid", mock.Anything, []uint{21, 22}, mock.Anything).Return(nil)
	repo.On("ReducePlatformFees", mock.Anything, uint(1), 18.5).Return(nil)
	repo.On("GetAppointmentForUpdate", mock.Anything, uint(40)).Return(&models.Appointment{
		ID:              40,
		UserID:          7,
		EstablishmentID: 1,
		Status:          string(domain.StatusAwaitingDeposit),
	}, nil)
	repo.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(ap *models.Appointment) bool {
		return ap.Status == string(domain.StatusConfirmed)
	})).Return(nil)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Entrega duplicada: pagamento já succeeded sai sem nenhum efeito.
func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(successEvent("pi_123"), nil)
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_123").Return(&models.Payment{
		ID:                9,
		ProviderPaymentID: "pi_123",
		Status:            models.PaymentSucceeded,
	}, nil)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkDebtsPaid", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ReducePlatformFees", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
}

// Duas entregas do mesmo evento serializam na linha travada: a segunda
// relê o status já succeeded e a recarga credita uma vez só.
func TestWebhookRepeatedDeliveryCreditsOnce(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	p := &models.Payment{
		ID:                12,
		UserID:            7,
		Purpose:           models.PaymentPurposeWalletTopup,
		Provider:          "stripe",
		ProviderPaymentID: "pi_repeat",
		Amount:            50,
		Status:            models.PaymentPending,
	}

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(successEvent("pi_repeat"), nil)
	// a mesma linha nas duas entregas; a primeira muda o status que a
	// segunda relê
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_repeat").Return(p, nil)
	repo.On("UpdatePayment", mock.Anything, p).Return(nil)
	repo.On("CreditWallet", mock.Anything, uint(7), 50.0, wallet.TxDeposit, mock.Anything, "pi_repeat").
		Return(nil)

	uc := NewHandleWebhook(repo, provider, noopNotifier{})

	assert.NoError(t, uc.Execute(context.Background(), []byte("{}"), nil))
	assert.NoError(t, uc.Execute(context.Background(), []byte("{}"), nil))

	repo.AssertNumberOfCalls(t, "CreditWallet", 1)
	repo.AssertNumberOfCalls(t, "UpdatePayment", 1)
}

// Pagamento desconhecido é aceito e ignorado (200 para o provedor).
func TestWebhookUnknownPaymentIgnored(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(successEvent("pi_unknown"), nil)
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_unknown").
		Return(nil, gorm.ErrRecordNotFound)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
}

// Evento irrelevante (ResolveWebhook devolve nil) não toca o banco.
func TestWebhookIgnoredEvent(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "GetPaymentByProviderIDForUpdate", mock.Anything, mock.Anything)
}

// Recarga de carteira credita o valor como deposit na confirmação.
func TestWebhookTopupCreditsWallet(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	p := &models.Payment{
		ID:                10,
		UserID:            7,
		Purpose:           models.PaymentPurposeWalletTopup,
		Provider:          "stripe",
		ProviderPaymentID: "pi_topup",
		Amount:            50,
		Status:            models.PaymentPending,
	}

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(successEvent("pi_topup"), nil)
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_topup").Return(p, nil)
	repo.On("UpdatePayment", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreditWallet", mock.Anything, uint(7), 50.0, wallet.TxDeposit, mock.Anything, "pi_topup").
		Return(nil)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Falha do provedor marca o registro como failed e para por aí.
func TestWebhookFailureMarksPayment(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProvider)

	p := &models.Payment{
		ID:                11,
		ProviderPaymentID: "pi_789",
		Status:            models.PaymentPending,
	}

	provider.On("ResolveWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(&payments.WebhookEvent{
			ProviderPaymentID: "pi_789",
			Status:            payments.StatusFailed,
		}, nil)
	repo.On("GetPaymentByProviderIDForUpdate", mock.Anything, "pi_789").Return(p, nil)
	repo.On("UpdatePayment", mock.Anything, mock.MatchedBy(func(up *models.Payment) bool {
		return up.Status == models.PaymentFailed
	})).Return(nil)

	err := NewHandleWebhook(repo, provider, noopNotifier{}).
		Execute(context.Background(), []byte("{}"), nil)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "MarkDebtsPaid", mock.Anything, mock.Anything, mock.Anything)
}
