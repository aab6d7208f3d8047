package wallet

import (
	"context"
	"errors"

	"github.com/navaro-app/navaro-api/internal/models"
)

// ===============================
// Wallet ledger
// ===============================

// Tipos de lançamento. Créditos entram com valor positivo, débitos com
// valor negativo.
const (
	TxDeposit    = "deposit"
	TxPayment    = "payment"
	TxRefund     = "refund"
	TxCashback   = "cashback"
	TxFee        = "fee"
	TxCommission = "commission"
	TxReferral   = "referral"
)

// ErrInsufficientFunds: saque maior que o saldo; nenhum débito parcial.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

type Repository interface {
	InTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	GetOrCreateWallet(
		ctx context.Context,
		userID uint,
	) (*models.UserWallet, error)

	// GetWalletForUpdate trava a linha da carteira para a transação.
	GetWalletForUpdate(
		ctx context.Context,
		userID uint,
	) (*models.UserWallet, error)

	// AddToBalance aplica o delta com incremento atômico.
	AddToBalance(
		ctx context.Context,
		walletID uint,
		delta float64,
	) error

	CreateTransaction(
		ctx context.Context,
		tx *models.WalletTransaction,
	) error

	ListTransactions(
		ctx context.Context,
		userID uint,
		limit int,
	) ([]models.WalletTransaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Balance(ctx context.Context, userID uint) (float64, error) {
	w, err := s.repo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (s *Service) Ledger(ctx context.Context, userID uint, limit int) ([]models.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListTransactions(ctx, userID, limit)
}

// Credit credita amount na carteira do usuário com o lançamento tipado.
// Valores não positivos são ignorados.
func (s *Service) Credit(ctx context.Context, userID uint, amount float64, txType, description, referenceID string) error {
	if amount <= 0 {
		return nil
	}

	return s.repo.InTx(ctx, func(r Repository) error {
		w, err := r.GetWalletForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := r.AddToBalance(ctx, w.ID, amount); err != nil {
			return err
		}
		return r.CreateTransaction(ctx, &models.WalletTransaction{
			WalletID:    w.ID,
			UserID:      userID,
			Type:        txType,
			Amount:      amount,
			Description: description,
			ReferenceID: referenceID,
		})
	})
}

// Withdraw debita amount; falha com ErrInsufficientFunds quando o saldo
// travado é menor que o valor, sem alterar nada.
func (s *Service) Withdraw(ctx context.Context, userID uint, amount float64, description, referenceID string) error {
	if amount <= 0 {
		return nil
	}

	return s.repo.InTx(ctx, func(r Repository) error {
		w, err := r.GetWalletForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if w.Balance < amount {
			return ErrInsufficientFunds
		}
		if err := r.AddToBalance(ctx, w.ID, -amount); err != nil {
			return err
		}
		return r.CreateTransaction(ctx, &models.WalletTransaction{
			WalletID:    w.ID,
			UserID:      userID,
			Type:        TxPayment,
			Amount:      -amount,
			Description: description,
			ReferenceID: referenceID,
		})
	})
}
