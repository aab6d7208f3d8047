package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// Carteira paga total + dívidas (100 + 15), quita as dívidas e confirma o
// agendamento na mesma transação.
func TestWalletPayWithdrawsTotalPlusDebts(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetAppointmentForUpdate", mock.Anything, uint(40)).Return(&models.Appointment{
		ID:              40,
		UserID:          7,
		EstablishmentID: 1,
		Status:          string(domain.StatusPending),
		TotalPrice:      100,
	}, nil)
	repo.On("ListPendingDebts", mock.Anything, uint(1), uint(7)).
		Return([]models.UserDebt{{ID: 21, Amount: 15}}, nil)
	repo.On("WithdrawWallet", mock.Anything, uint(7), 115.0, mock.Anything, "40").Return(nil)
	repo.On("MarkDebtsPaid", mock.Anything, []uint{21}, mock.Anything).Return(nil)
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Provider == "wallet" &&
			p.Status == models.PaymentSucceeded &&
			p.Amount == 115.0
	})).Return(nil)
	repo.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(ap *models.Appointment) bool {
		return ap.Status == string(domain.StatusConfirmed)
	})).Return(nil)

	p, err := NewPayWithWallet(repo, noopNotifier{}).
		Execute(context.Background(), 7, 40)

	assert.NoError(t, err)
	assert.Equal(t, 115.0, p.Amount)
	repo.AssertExpectations(t)
}

// Saldo insuficiente aborta sem quitar dívida nem confirmar nada.
func TestWalletPayInsufficientFundsAborts(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetAppointmentForUpdate", mock.Anything, uint(41)).Return(&models.Appointment{
		ID:              41,
		UserID:          7,
		EstablishmentID: 1,
		Status:          string(domain.StatusPending),
		TotalPrice:      100,
	}, nil)
	repo.On("ListPendingDebts", mock.Anything, uint(1), uint(7)).
		Return([]models.UserDebt{}, nil)
	repo.On("WithdrawWallet", mock.Anything, uint(7), 100.0, mock.Anything, "41").
		Return(wallet.ErrInsufficientFunds)

	_, err := NewPayWithWallet(repo, noopNotifier{}).
		Execute(context.Background(), 7, 41)

	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	repo.AssertNotCalled(t, "MarkDebtsPaid", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
}

// Agendamento já confirmado não cobra de novo.
func TestWalletPayAlreadyConfirmed(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetAppointmentForUpdate", mock.Anything, uint(42)).Return(&models.Appointment{
		ID:     42,
		UserID: 7,
		Status: string(domain.StatusConfirmed),
	}, nil)

	_, err := NewPayWithWallet(repo, noopNotifier{}).
		Execute(context.Background(), 7, 42)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "WithdrawWallet",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
