package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/models"
)

type QueueGormRepository struct {
	db *gorm.DB
}

func NewQueueGormRepository(g *gorm.DB) *QueueGormRepository {
	return &QueueGormRepository{db: g}
}

func (r *QueueGormRepository) InTx(
	ctx context.Context,
	fn func(queue.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&QueueGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Queue
// --------------------------------------------------

func (r *QueueGormRepository) HasActiveEntry(
	ctx context.Context,
	establishmentID uint,
	userID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where(
			"establishment_id = ? AND user_id = ? AND status IN ('waiting', 'called', 'serving')",
			establishmentID, userID,
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// MaxWaitingPosition trava as linhas waiting do estabelecimento; a posição
// atribuída em seguida não corre com outro join nem com a renumeração.
func (r *QueueGormRepository) MaxWaitingPosition(
	ctx context.Context,
	establishmentID uint,
) (int, error) {

	var entries []models.QueueEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("establishment_id = ? AND status = 'waiting'", establishmentID).
		Find(&entries).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, e := range entries {
		if e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

func (r *QueueGormRepository) CreateEntry(
	ctx context.Context,
	e *models.QueueEntry,
) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *QueueGormRepository) GetEntry(
	ctx context.Context,
	id uint,
) (*models.QueueEntry, error) {

	var e models.QueueEntry
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) GetEntryForUpdate(
	ctx context.Context,
	id uint,
) (*models.QueueEntry, error) {

	var e models.QueueEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) UpdateEntry(
	ctx context.Context,
	e *models.QueueEntry,
) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *QueueGormRepository) ShiftPositionsAfter(
	ctx context.Context,
	establishmentID uint,
	removedPosition int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where(
			"establishment_id = ? AND status = 'waiting' AND position > ?",
			establishmentID, removedPosition,
		).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}

func (r *QueueGormRepository) ListWaiting(
	ctx context.Context,
	establishmentID uint,
) ([]models.QueueEntry, error) {

	var entries []models.QueueEntry
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND status = 'waiting'", establishmentID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Compile-time check
var _ queue.Repository = (*QueueGormRepository)(nil)
