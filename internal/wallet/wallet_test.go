package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/navaro-app/navaro-api/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return fn(m)
}

func (m *MockRepository) GetOrCreateWallet(ctx context.Context, userID uint) (*models.UserWallet, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*models.UserWallet), args.Error(1)
}

func (m *MockRepository) GetWalletForUpdate(ctx context.Context, userID uint) (*models.UserWallet, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*models.UserWallet), args.Error(1)
}

func (m *MockRepository) AddToBalance(ctx context.Context, walletID uint, delta float64) error {
	args := m.Called(ctx, walletID, delta)
	return args.Error(0)
}

func (m *MockRepository) CreateTransaction(ctx context.Context, tx *models.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) ListTransactions(ctx context.Context, userID uint, limit int) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]models.WalletTransaction), args.Error(1)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetWalletForUpdate", mock.Anything, uint(7)).
		Return(&models.UserWallet{ID: 1, UserID: 7, Balance: 30}, nil)

	err := svc.Withdraw(context.Background(), 7, 50, "agendamento", "apt:9")

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	repo.AssertNotCalled(t, "AddToBalance", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestWithdrawDebitsAndRecords(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetWalletForUpdate", mock.Anything, uint(7)).
		Return(&models.UserWallet{ID: 1, UserID: 7, Balance: 80}, nil)
	repo.On("AddToBalance", mock.Anything, uint(1), -50.0).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.WalletTransaction) bool {
		return tx.Type == TxPayment && tx.Amount == -50.0 && tx.UserID == 7
	})).Return(nil)

	err := svc.Withdraw(context.Background(), 7, 50, "agendamento", "apt:9")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreditRecordsTypedEntry(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetWalletForUpdate", mock.Anything, uint(3)).
		Return(&models.UserWallet{ID: 2, UserID: 3, Balance: 0}, nil)
	repo.On("AddToBalance", mock.Anything, uint(2), 10.0).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.WalletTransaction) bool {
		return tx.Type == TxCashback && tx.Amount == 10.0
	})).Return(nil)

	err := svc.Credit(context.Background(), 3, 10, TxCashback, "cashback", "apt:9")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreditIgnoresNonPositive(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	assert.NoError(t, svc.Credit(context.Background(), 3, 0, TxCashback, "", ""))
	assert.NoError(t, svc.Credit(context.Background(), 3, -5, TxCashback, "", ""))
	repo.AssertNotCalled(t, "GetWalletForUpdate", mock.Anything, mock.Anything)
}

func TestBalance(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetOrCreateWallet", mock.Anything, uint(3)).
		Return(&models.UserWallet{ID: 2, UserID: 3, Balance: 42.5}, nil)

	got, err := svc.Balance(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 42.5, got)
}

func TestLedgerClampsLimit(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("ListTransactions", mock.Anything, uint(3), 50).
		Return([]models.WalletTransaction{}, nil)

	_, err := svc.Ledger(context.Background(), 3, 0)
	assert.NoError(t, err)

	_, err = svc.Ledger(context.Background(), 3, 500)
	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListTransactions", 2)
}
