package auth

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/models"
)

type Repository interface {
	FindByPhone(
		ctx context.Context,
		phone string,
	) (*models.User, error)

	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	FindByReferralCode(
		ctx context.Context,
		code string,
	) (*models.User, error)

	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	// OwnedEstablishment devolve o estabelecimento do usuário, ou nil
	// quando ele não é dono de nenhum.
	OwnedEstablishment(
		ctx context.Context,
		userID uint,
	) (*models.Establishment, error)

	// StaffEstablishmentID devolve o estabelecimento onde o usuário
	// trabalha, ou zero quando ele não está em nenhuma equipe.
	StaffEstablishmentID(
		ctx context.Context,
		userID uint,
	) (uint, error)
}
