package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/metrics"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/timezone"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// ======================================================
// USE CASE
// ======================================================
//
// Provedores entregam webhooks pelo menos uma vez; todo o processamento é
// idempotente por provider_payment_id. Entregas repetidas de um pagamento
// já succeeded saem sem efeito algum.

type HandleWebhook struct {
	repo     payments.Repository
	provider payments.Provider
	notifier Notifier
}

func NewHandleWebhook(
	repo payments.Repository,
	provider payments.Provider,
	notifier Notifier,
) *HandleWebhook {
	return &HandleWebhook{
		repo:     repo,
		provider: provider,
		notifier: notifier,
	}
}

// ProviderName identifica o provedor que este webhook espera.
func (uc *HandleWebhook) ProviderName() string {
	return uc.provider.Name()
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *HandleWebhook) Execute(
	ctx context.Context,
	body []byte,
	headers map[string]string,
) error {

	// --------------------------------------------------
	// 1️⃣ Interpretação e verificação da entrega
	// --------------------------------------------------
	ev, err := uc.provider.ResolveWebhook(ctx, body, headers)
	if err != nil {
		return err
	}
	if ev == nil {
		// evento que não interessa (ping, tipo desconhecido)
		return nil
	}

	switch ev.Status {
	case payments.StatusFailed, payments.StatusSucceeded:
	default:
		// pendente ou intermediário: aguarda a próxima entrega
		return nil
	}

	// --------------------------------------------------
	// 2️⃣ Pagamento local travado dentro da transação; a releitura do
	// status na linha travada é o que segura entregas concorrentes do
	// mesmo evento. Pagamento desconhecido é ignorado.
	// --------------------------------------------------
	var p *models.Payment
	var applied bool

	err = uc.repo.InTx(ctx, func(r payments.Repository) error {

		var err error
		p, err = r.GetPaymentByProviderIDForUpdate(ctx, ev.ProviderPaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if p.Status == models.PaymentSucceeded {
			// entrega duplicada
			return nil
		}

		// --------------------------------------------------
		// 3️⃣ Falha: só marca o registro
		// --------------------------------------------------
		if ev.Status == payments.StatusFailed {
			p.Status = models.PaymentFailed
			return r.UpdatePayment(ctx, p)
		}

		// --------------------------------------------------
		// 4️⃣ Sucesso: liquidação na mesma transação
		// --------------------------------------------------
		applied = true
		return uc.applySuccess(ctx, r, p)
	})
	if err != nil {
		return err
	}

	if !applied {
		return nil
	}

	metrics.PaymentsSucceeded.WithLabelValues(p.Provider).Inc()

	uc.notifier.Notify(notification.Message{
		UserID: p.UserID,
		Title:  "Pagamento confirmado",
		Body:   "Recebemos seu pagamento.",
		Type:   "payment_succeeded",
		Data:   map[string]any{"payment_id": p.ID},
	})
	return nil
}

func (uc *HandleWebhook) applySuccess(
	ctx context.Context,
	r payments.Repository,
	p *models.Payment,
) error {

	now := timezone.Now()

	p.Status = models.PaymentSucceeded
	if err := r.UpdatePayment(ctx, p); err != nil {
		return err
	}

	// dívidas embutidas na cobrança
	if ids := parseDebtIDs(metaString(p.Metadata, "debt_ids")); len(ids) > 0 {
		if err := r.MarkDebtsPaid(ctx, ids, now); err != nil {
			return err
		}
	}

	// taxas de plataforma recuperadas do lado do estabelecimento
	if recovered := metaFloat(p.Metadata, "recovered_fees"); recovered > 0 {
		if err := r.ReducePlatformFees(ctx, p.EstablishmentID, recovered); err != nil {
			return err
		}
	}

	switch p.Purpose {

	case models.PaymentPurposeAppointment:
		if p.AppointmentID == nil {
			return nil
		}
		ap, err := r.GetAppointmentForUpdate(ctx, *p.AppointmentID)
		if err != nil {
			return err
		}
		status := domain.Status(ap.Status)
		if status == domain.StatusConfirmed || status.IsTerminal() {
			return nil
		}
		if err := domain.Confirm(ap); err != nil {
			return err
		}
		return r.UpdateAppointment(ctx, ap)

	case models.PaymentPurposeWalletTopup:
		return r.CreditWallet(
			ctx,
			p.UserID,
			p.Amount,
			wallet.TxDeposit,
			"recarga de carteira",
			p.ProviderPaymentID,
		)
	}

	return nil
}

// --------------------------------------------------
// Metadados gravados na criação do intent
// --------------------------------------------------

func metaString(m models.JSONMap, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func metaFloat(m models.JSONMap, key string) float64 {
	v, err := strconv.ParseFloat(metaString(m, key), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDebtIDs(s string) []uint {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
