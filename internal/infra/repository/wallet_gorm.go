package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navaro-app/navaro-api/internal/db"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

type WalletGormRepository struct {
	db *gorm.DB
}

func NewWalletGormRepository(g *gorm.DB) *WalletGormRepository {
	return &WalletGormRepository{db: g}
}

func (r *WalletGormRepository) InTx(
	ctx context.Context,
	fn func(wallet.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WalletGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Wallet
// --------------------------------------------------

func (r *WalletGormRepository) GetOrCreateWallet(
	ctx context.Context,
	userID uint,
) (*models.UserWallet, error) {

	var w models.UserWallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	w = models.UserWallet{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		// corrida com outra criação: a carteira já existe, rebusca
		if db.IsUniqueViolation(err) {
			if err := r.db.WithContext(ctx).
				Where("user_id = ?", userID).
				First(&w).Error; err != nil {
				return nil, err
			}
			return &w, nil
		}
		return nil, err
	}

	return &w, nil
}

func (r *WalletGormRepository) GetWalletForUpdate(
	ctx context.Context,
	userID uint,
) (*models.UserWallet, error) {

	if _, err := r.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}

	var w models.UserWallet
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&w).Error; err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *WalletGormRepository) AddToBalance(
	ctx context.Context,
	walletID uint,
	delta float64,
) error {
	return r.db.WithContext(ctx).
		Model(&models.UserWallet{}).
		Where("id = ?", walletID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}

func (r *WalletGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.WalletTransaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *WalletGormRepository) ListTransactions(
	ctx context.Context,
	userID uint,
	limit int,
) ([]models.WalletTransaction, error) {

	var txs []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

// Compile-time check
var _ wallet.Repository = (*WalletGormRepository)(nil)
