package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(g *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: g}
}

func (r *PaymentGormRepository) InTx(
	ctx context.Context,
	fn func(payments.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Cargas
// --------------------------------------------------

func (r *PaymentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PaymentGormRepository) GetEstablishment(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var e models.Establishment
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PaymentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Bundle").
		First(&ap, id).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *PaymentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *PaymentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	id uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) GetPaymentByProviderIDForUpdate(
	ctx context.Context,
	providerPaymentID string,
) (*models.Payment, error) {

	var p models.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider_payment_id = ?", providerPaymentID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Dívidas
// --------------------------------------------------

func (r *PaymentGormRepository) ListPendingDebts(
	ctx context.Context,
	establishmentID uint,
	userID uint,
) ([]models.UserDebt, error) {

	var debts []models.UserDebt
	err := r.db.WithContext(ctx).
		Where(
			"establishment_id = ? AND user_id = ? AND status = ?",
			establishmentID, userID, models.DebtPending,
		).
		Order("created_at ASC").
		Find(&debts).Error
	if err != nil {
		return nil, err
	}

	return debts, nil
}

func (r *PaymentGormRepository) MarkDebtsPaid(
	ctx context.Context,
	ids []uint,
	paidAt time.Time,
) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.UserDebt{}).
		Where("id IN ? AND status = ?", ids, models.DebtPending).
		Updates(map[string]interface{}{
			"status":  models.DebtPaid,
			"paid_at": paidAt,
		}).Error
}

func (r *PaymentGormRepository) ReducePlatformFees(
	ctx context.Context,
	establishmentID uint,
	amount float64,
) error {
	if amount <= 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Establishment{}).
		Where("id = ?", establishmentID).
		UpdateColumn(
			"pending_platform_fees",
			gorm.Expr("GREATEST(pending_platform_fees - ?, 0)", amount),
		).Error
}

// --------------------------------------------------
// Carteira
// --------------------------------------------------

func (r *PaymentGormRepository) CreditWallet(
	ctx context.Context,
	userID uint,
	amount float64,
	txType string,
	description string,
	referenceID string,
) error {
	if amount <= 0 {
		return nil
	}

	w := NewWalletGormRepository(r.db)
	acct, err := w.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if err := w.AddToBalance(ctx, acct.ID, amount); err != nil {
		return err
	}
	return w.CreateTransaction(ctx, &models.WalletTransaction{
		WalletID:    acct.ID,
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
	})
}

func (r *PaymentGormRepository) WithdrawWallet(
	ctx context.Context,
	userID uint,
	amount float64,
	description string,
	referenceID string,
) error {
	if amount <= 0 {
		return nil
	}

	w := NewWalletGormRepository(r.db)
	acct, err := w.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if acct.Balance < amount {
		return wallet.ErrInsufficientFunds
	}
	if err := w.AddToBalance(ctx, acct.ID, -amount); err != nil {
		return err
	}
	return w.CreateTransaction(ctx, &models.WalletTransaction{
		WalletID:    acct.ID,
		UserID:      userID,
		Type:        wallet.TxPayment,
		Amount:      -amount,
		Description: description,
		ReferenceID: referenceID,
	})
}

// Compile-time check
var _ payments.Repository = (*PaymentGormRepository)(nil)
