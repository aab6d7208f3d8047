package goal

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type ListGoals struct {
	repo Repository
}

func NewListGoals(repo Repository) *ListGoals {
	return &ListGoals{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ListGoals) Execute(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
) ([]models.StaffGoal, error) {

	staff, err := uc.repo.GetStaff(ctx, staffID)
	if err != nil || staff.EstablishmentID != establishmentID {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	goals, err := uc.repo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	// customer_count é recontado na leitura: o incremento de conclusão
	// não sabe distinguir cliente repetido de cliente novo.
	for i := range goals {
		if goals[i].GoalType != models.GoalCustomerCount {
			continue
		}
		n, err := uc.repo.CountDistinctCustomers(
			ctx, staffID, goals[i].PeriodStart, goals[i].PeriodEnd,
		)
		if err != nil {
			return nil, err
		}
		goals[i].CurrentValue = float64(n)
	}

	return goals, nil
}
