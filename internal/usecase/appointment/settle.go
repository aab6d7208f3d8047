package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/settings"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// ======================================================
// Settlement pipeline
// ======================================================
//
// Roda dentro da MESMA transação que muda o status para completed; qualquer
// falha desfaz a conclusão inteira. Os valores usam o total_price congelado
// na criação, nunca o preço atual do serviço.

type Settler struct {
	settings SettingsReader
}

func NewSettler(settings SettingsReader) *Settler {
	return &Settler{settings: settings}
}

func (s *Settler) Run(
	ctx context.Context,
	r domain.Repository,
	ap *models.Appointment,
	completedAt time.Time,
) error {

	est, err := r.GetEstablishment(ctx, ap.EstablishmentID)
	if err != nil {
		return err
	}

	ref := fmt.Sprint(ap.ID)

	// --------------------------------------------------
	// 1️⃣ Taxa de plataforma (atendimento em dinheiro)
	// --------------------------------------------------
	if ap.PaymentMethod == "cash" {
		fee := domain.PlatformFee(ap.TotalPrice, est.SubscriptionTier)
		if fee > 0 {
			if err := r.AccruePlatformFee(ctx, est.ID, fee); err != nil {
				return err
			}
		}
	}

	// --------------------------------------------------
	// 2️⃣ Cashback do cliente
	// --------------------------------------------------
	if s.settings.GetBool(ctx, settings.KeyCashbackEnabled, false) {
		pct := s.settings.GetFloat(ctx, settings.KeyCashbackPercent, 0)
		amount := domain.Round2(ap.TotalPrice * pct / 100)
		if amount > 0 {
			if err := r.CreditWallet(
				ctx,
				ap.UserID,
				amount,
				wallet.TxCashback,
				"cashback de atendimento",
				ref,
			); err != nil {
				return err
			}
		}
	}

	// --------------------------------------------------
	// 3️⃣ Comissão e metas do profissional
	// --------------------------------------------------
	staff, err := r.GetStaff(ctx, ap.EstablishmentID, ap.StaffID)
	if err != nil {
		return err
	}

	if staff.UserID != nil && staff.CommissionRate != nil && *staff.CommissionRate > 0 {
		amount := domain.Round2(ap.TotalPrice * *staff.CommissionRate / 100)
		if amount > 0 {
			if err := r.CreditWallet(
				ctx,
				*staff.UserID,
				amount,
				wallet.TxCommission,
				"comissão de atendimento",
				ref,
			); err != nil {
				return err
			}
		}
	}

	if err := r.IncrementGoalsOnCompletion(
		ctx,
		ap.StaffID,
		completedAt,
		ap.TotalPrice,
	); err != nil {
		return err
	}

	// --------------------------------------------------
	// 4️⃣ Bônus de indicação (primeira conclusão do cliente)
	// --------------------------------------------------
	user, err := r.GetUser(ctx, ap.UserID)
	if err != nil {
		return err
	}

	if user.ReferredByID != nil {
		previous, err := r.CountOtherCompletedByUser(ctx, ap.UserID, ap.ID)
		if err != nil {
			return err
		}
		if previous == 0 {
			bonus := s.settings.GetFloat(ctx, settings.KeyReferralBonus, 0)
			if bonus > 0 {
				if err := r.CreditWallet(
					ctx,
					*user.ReferredByID,
					bonus,
					wallet.TxReferral,
					"bônus de indicação",
					ref,
				); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
