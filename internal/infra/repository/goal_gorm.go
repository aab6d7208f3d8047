package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/usecase/goal"
)

type GoalGormRepository struct {
	db *gorm.DB
}

func NewGoalGormRepository(g *gorm.DB) *GoalGormRepository {
	return &GoalGormRepository{db: g}
}

func (r *GoalGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GoalGormRepository) CreateGoal(
	ctx context.Context,
	g *models.StaffGoal,
) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GoalGormRepository) ListByStaff(
	ctx context.Context,
	staffID uint,
) ([]models.StaffGoal, error) {

	var goals []models.StaffGoal
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("period_start DESC").
		Find(&goals).Error
	return goals, err
}

func (r *GoalGormRepository) CountDistinctCustomers(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"staff_id = ? AND status = 'completed' AND scheduled_at >= ? AND scheduled_at <= ?",
			staffID, from, to,
		).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

var _ goal.Repository = (*GoalGormRepository)(nil)
