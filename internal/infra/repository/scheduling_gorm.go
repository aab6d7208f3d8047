package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navaro-app/navaro-api/internal/db"
	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(g *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: g}
}

// --------------------------------------------------
// Transações
// --------------------------------------------------

func (r *SchedulingGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

func (r *SchedulingGormRepository) InSerializableTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return db.SerializableTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Cargas
// --------------------------------------------------

func (r *SchedulingGormRepository) GetEstablishment(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *SchedulingGormRepository) GetStaff(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", staffID, establishmentID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	establishmentID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", serviceID, establishmentID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *SchedulingGormRepository) GetBundle(
	ctx context.Context,
	establishmentID uint,
	bundleID uint,
) (*models.ServiceBundle, error) {

	var bundle models.ServiceBundle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", bundleID, establishmentID).
		First(&bundle).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *SchedulingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Dados do validador
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookedIntervals(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]schedule.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("scheduled_at", "duration_minutes").
		Where(
			"staff_id = ? AND status <> 'cancelled' AND scheduled_at < ? AND scheduled_at + make_interval(mins => duration_minutes) > ?",
			staffID, to, from,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		intervals = append(intervals, schedule.Interval{
			Start: ap.ScheduledAt,
			End:   ap.EndsAt(),
		})
	}
	return intervals, nil
}

func (r *SchedulingGormRepository) ListBlockIntervals(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]schedule.Interval, error) {

	var blocks []models.StaffBlock
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND start_at < ? AND end_at > ?", staffID, to, from).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(blocks))
	for _, b := range blocks {
		intervals = append(intervals, schedule.Interval{Start: b.StartAt, End: b.EndAt})
	}
	return intervals, nil
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *SchedulingGormRepository) ListAppointmentsByUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Establishment").
		Preload("Staff").
		Preload("Service").
		Preload("Bundle").
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Limit(100).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	establishmentID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Staff").
		Preload("Service").
		Preload("Bundle").
		Where(
			"establishment_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			establishmentID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Liquidação
// --------------------------------------------------

func (r *SchedulingGormRepository) AccruePlatformFee(
	ctx context.Context,
	establishmentID uint,
	amount float64,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Establishment{}).
		Where("id = ?", establishmentID).
		UpdateColumn("pending_platform_fees", gorm.Expr("pending_platform_fees + ?", amount)).Error
}

func (r *SchedulingGormRepository) CreditWallet(
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

func (r *SchedulingGormRepository) WithdrawWallet(
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

func (r *SchedulingGormRepository) IncrementGoalsOnCompletion(
	ctx context.Context,
	staffID uint,
	completedAt time.Time,
	revenue float64,
) error {

	err := r.db.WithContext(ctx).
		Model(&models.StaffGoal{}).
		Where(
			"staff_id = ? AND goal_type = ? AND period_start <= ? AND period_end >= ?",
			staffID, models.GoalRevenue, completedAt, completedAt,
		).
		UpdateColumn("current_value", gorm.Expr("current_value + ?", revenue)).Error
	if err != nil {
		return err
	}

	// customer_count fica de fora: é recontado por consulta de clientes
	// distintos na leitura, nunca incrementado aqui.
	return r.db.WithContext(ctx).
		Model(&models.StaffGoal{}).
		Where(
			"staff_id = ? AND goal_type = ? AND period_start <= ? AND period_end >= ?",
			staffID, models.GoalServicesCount, completedAt, completedAt,
		).
		UpdateColumn("current_value", gorm.Expr("current_value + 1")).Error
}

func (r *SchedulingGormRepository) CountOtherCompletedByUser(
	ctx context.Context,
	userID uint,
	excludeAppointmentID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"user_id = ? AND status = 'completed' AND id <> ?",
			userID, excludeAppointmentID,
		).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Dívidas e pagamentos
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateDebt(
	ctx context.Context,
	debt *models.UserDebt,
) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

func (r *SchedulingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	if p.ProviderPaymentID == "" {
		return fmt.Errorf("payment without provider_payment_id")
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
