package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/metrics"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================
//
// Pagamento integral pela carteira: débito, quitação de dívidas, registro
// do Payment e confirmação do agendamento em uma única transação. Sem
// provedor externo envolvido, a confirmação é síncrona.

type PayWithWallet struct {
	repo     payments.Repository
	notifier Notifier
}

func NewPayWithWallet(
	repo payments.Repository,
	notifier Notifier,
) *PayWithWallet {
	return &PayWithWallet{
		repo:     repo,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PayWithWallet) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Payment, error) {

	var payment *models.Payment

	err := uc.repo.InTx(ctx, func(r payments.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Agendamento travado e ainda pagável
		// --------------------------------------------------
		ap, err := r.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil || ap.UserID != userID {
			return httperr.ErrBusiness("appointment_not_found")
		}

		status := domain.Status(ap.Status)
		if status.IsTerminal() || status == domain.StatusConfirmed {
			return httperr.ErrBusiness("appointment_not_payable")
		}

		// --------------------------------------------------
		// 2️⃣ Total + dívidas pendentes
		// --------------------------------------------------
		debts, err := r.ListPendingDebts(ctx, ap.EstablishmentID, userID)
		if err != nil {
			return err
		}

		debtIDs := make([]uint, 0, len(debts))
		debtLabels := make([]string, 0, len(debts))
		total := ap.TotalPrice
		for _, d := range debts {
			debtIDs = append(debtIDs, d.ID)
			debtLabels = append(debtLabels, strconv.FormatUint(uint64(d.ID), 10))
			total += d.Amount
		}
		total = domain.Round2(total)

		// --------------------------------------------------
		// 3️⃣ Débito (aborta tudo com saldo insuficiente)
		// --------------------------------------------------
		if err := r.WithdrawWallet(
			ctx,
			userID,
			total,
			"appointment payment",
			fmt.Sprint(ap.ID),
		); err != nil {
			return err
		}

		now := timezone.Now()
		if err := r.MarkDebtsPaid(ctx, debtIDs, now); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Registro e confirmação
		// --------------------------------------------------
		apID := ap.ID
		payment = &models.Payment{
			UserID:            userID,
			EstablishmentID:   ap.EstablishmentID,
			AppointmentID:     &apID,
			Purpose:           models.PaymentPurposeAppointment,
			Provider:          "wallet",
			ProviderPaymentID: "wallet_" + uuid.NewString(),
			Amount:            total,
			Currency:          "BRL",
			Status:            models.PaymentSucceeded,
			Metadata: models.JSONMap{
				"debt_ids": strings.Join(debtLabels, ","),
			},
		}
		if err := r.CreatePayment(ctx, payment); err != nil {
			return err
		}

		if err := domain.Confirm(ap); err != nil {
			return err
		}
		return r.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsSucceeded.WithLabelValues("wallet").Inc()

	uc.notifier.Notify(notification.Message{
		UserID: userID,
		Title:  "Pagamento confirmado",
		Body:   "Pagamento realizado com o saldo da carteira.",
		Type:   "payment_succeeded",
		Data:   map[string]any{"payment_id": payment.ID},
	})

	return payment, nil
}
