package payment

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// ======================================================
// USE CASE
// ======================================================

type RefundPayment struct {
	repo     payments.Repository
	provider payments.Provider
	notifier Notifier
}

func NewRefundPayment(
	repo payments.Repository,
	provider payments.Provider,
	notifier Notifier,
) *RefundPayment {
	return &RefundPayment{
		repo:     repo,
		provider: provider,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RefundPayment) Execute(
	ctx context.Context,
	establishmentID uint,
	paymentID uint,
) (*models.Payment, error) {

	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil || p.EstablishmentID != establishmentID {
		return nil, httperr.ErrBusiness("payment_not_found")
	}

	if p.Status != models.PaymentSucceeded {
		return nil, httperr.ErrBusiness("payment_not_refundable")
	}

	// --------------------------------------------------
	// Carteira: estorno é crédito local, em transação
	// --------------------------------------------------
	if p.Provider == "wallet" {
		err := uc.repo.InTx(ctx, func(r payments.Repository) error {
			if err := r.CreditWallet(
				ctx,
				p.UserID,
				p.Amount,
				wallet.TxRefund,
				"estorno de pagamento",
				p.ProviderPaymentID,
			); err != nil {
				return err
			}
			p.Status = models.PaymentRefunded
			return r.UpdatePayment(ctx, p)
		})
		if err != nil {
			return nil, err
		}
	} else {
		// provedor primeiro; o registro local só muda depois do aceite
		if err := uc.provider.Refund(ctx, p.ProviderPaymentID, p.Amount); err != nil {
			return nil, err
		}
		p.Status = models.PaymentRefunded
		if err := uc.repo.UpdatePayment(ctx, p); err != nil {
			return nil, err
		}
	}

	uc.notifier.Notify(notification.Message{
		UserID: p.UserID,
		Title:  "Pagamento estornado",
		Body:   "O valor pago foi estornado.",
		Type:   "payment_refunded",
		Data:   map[string]any{"payment_id": p.ID},
	})

	return p, nil
}
