package goal

import (
	"context"
	"time"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateGoalInput struct {
	EstablishmentID uint
	StaffID         uint

	GoalType    string  `json:"goal_type" binding:"required"`
	PeriodStart string  `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd   string  `json:"period_end" binding:"required"`   // YYYY-MM-DD inclusivo
	TargetValue float64 `json:"target_value" binding:"required"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateGoal struct {
	repo Repository
}

func NewCreateGoal(repo Repository) *CreateGoal {
	return &CreateGoal{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateGoal) Execute(ctx context.Context, in CreateGoalInput) (*models.StaffGoal, error) {

	// 1️⃣ Tipo e período.
	switch in.GoalType {
	case models.GoalRevenue, models.GoalServicesCount, models.GoalCustomerCount:
	default:
		return nil, httperr.ErrBusiness("invalid_goal_type")
	}

	if in.TargetValue <= 0 {
		return nil, httperr.ErrBusiness("invalid_target_value")
	}

	loc := timezone.Location(timezone.Default())

	start, err := time.ParseInLocation("2006-01-02", in.PeriodStart, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_period")
	}
	end, err := time.ParseInLocation("2006-01-02", in.PeriodEnd, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	// Data final inclusiva: a meta cobre o último dia inteiro.
	end = end.AddDate(0, 0, 1).Add(-time.Second)

	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	// 2️⃣ Profissional do próprio estabelecimento.
	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil || staff.EstablishmentID != in.EstablishmentID {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	// 3️⃣ Grava zerada; quem movimenta é a conclusão de atendimentos.
	g := &models.StaffGoal{
		StaffID:         in.StaffID,
		EstablishmentID: in.EstablishmentID,
		GoalType:        in.GoalType,
		PeriodStart:     start,
		PeriodEnd:       end,
		TargetValue:     in.TargetValue,
	}

	if err := uc.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}
