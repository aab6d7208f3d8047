package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/usecase/auth"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(g *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: g}
}

func (r *UserGormRepository) FindByPhone(
	ctx context.Context,
	phone string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByReferralCode(
	ctx context.Context,
	code string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("referral_code = ?", code).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) OwnedEstablishment(
	ctx context.Context,
	userID uint,
) (*models.Establishment, error) {

	var est models.Establishment
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		First(&est).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *UserGormRepository) StaffEstablishmentID(
	ctx context.Context,
	userID uint,
) (uint, error) {

	var member models.StaffMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return member.EstablishmentID, nil
}

var _ auth.Repository = (*UserGormRepository)(nil)
