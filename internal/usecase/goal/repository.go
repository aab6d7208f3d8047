package goal

import (
	"context"
	"time"

	"github.com/navaro-app/navaro-api/internal/models"
)

type Repository interface {
	GetStaff(
		ctx context.Context,
		id uint,
	) (*models.StaffMember, error)

	CreateGoal(
		ctx context.Context,
		g *models.StaffGoal,
	) error

	ListByStaff(
		ctx context.Context,
		staffID uint,
	) ([]models.StaffGoal, error)

	// CountDistinctCustomers conta clientes únicos com atendimento
	// concluído pelo profissional dentro do período.
	CountDistinctCustomers(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) (int64, error)
}
