package payment

import (
	"context"
	"fmt"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/payments"
)

// ======================================================
// USE CASE
// ======================================================
//
// Recarga de carteira: cria um intent marcado como wallet_topup; o crédito
// em si só acontece quando o webhook confirmar o pagamento.

type TopUpWallet struct {
	repo     payments.Repository
	provider payments.Provider
}

func NewTopUpWallet(
	repo payments.Repository,
	provider payments.Provider,
) *TopUpWallet {
	return &TopUpWallet{
		repo:     repo,
		provider: provider,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *TopUpWallet) Execute(
	ctx context.Context,
	userID uint,
	amount float64,
) (*IntentOutput, error) {

	if amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	intent, err := uc.provider.CreateIntent(ctx, payments.CreateIntentInput{
		UserID:      userID,
		Email:       user.Email,
		Amount:      amount,
		Currency:    "BRL",
		Description: fmt.Sprintf("recarga de carteira de %s", user.Name),
		Metadata: map[string]string{
			"purpose": models.PaymentPurposeWalletTopup,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		UserID:            userID,
		Purpose:           models.PaymentPurposeWalletTopup,
		Provider:          uc.provider.Name(),
		ProviderPaymentID: intent.ProviderPaymentID,
		Amount:            amount,
		Currency:          "BRL",
		Status:            models.PaymentPending,
	}

	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return &IntentOutput{
		Payment:      p,
		ClientSecret: intent.ClientSecret,
		QRCode:       intent.QRCode,
		QRCodeBase64: intent.QRCodeBase64,
	}, nil
}
