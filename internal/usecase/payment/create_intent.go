package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/payments"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateIntentInput struct {
	UserID        uint
	AppointmentID uint
}

// IntentOutput devolve o necessário para o cliente finalizar o pagamento
// no provedor (client_secret no cartão, QR no PIX).
type IntentOutput struct {
	Payment      *models.Payment `json:"payment"`
	ClientSecret string          `json:"client_secret,omitempty"`
	QRCode       string          `json:"qr_code,omitempty"`
	QRCodeBase64 string          `json:"qr_code_base64,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateIntent struct {
	repo     payments.Repository
	provider payments.Provider
}

func NewCreateIntent(
	repo payments.Repository,
	provider payments.Provider,
) *CreateIntent {
	return &CreateIntent{
		repo:     repo,
		provider: provider,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateIntent) Execute(
	ctx context.Context,
	in CreateIntentInput,
) (*IntentOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Agendamento do próprio cliente, ainda pagável
	// --------------------------------------------------
	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil || ap.UserID != in.UserID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	status := domain.Status(ap.Status)
	if status.IsTerminal() || status == domain.StatusConfirmed {
		return nil, httperr.ErrBusiness("appointment_not_payable")
	}

	est, err := uc.repo.GetEstablishment(ctx, ap.EstablishmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Valor base: sinal quando aguardando depósito
	// --------------------------------------------------
	base := ap.TotalPrice
	isDeposit := false

	if status == domain.StatusAwaitingDeposit {
		if dep := domain.DepositAmount(ap.TotalPrice, est.DepositPercent); dep > 0 {
			base = dep
			isDeposit = true
		}
	}

	// --------------------------------------------------
	// 3️⃣ Dívidas pendentes entram na mesma cobrança
	// --------------------------------------------------
	debts, err := uc.repo.ListPendingDebts(ctx, est.ID, ap.UserID)
	if err != nil {
		return nil, err
	}

	debtIDs := make([]string, 0, len(debts))
	debtTotal := 0.0
	for _, d := range debts {
		debtIDs = append(debtIDs, strconv.FormatUint(uint64(d.ID), 10))
		debtTotal += d.Amount
	}

	amount := domain.Round2(base + debtTotal)

	// As taxas acumuladas viajam só como metadado: são recuperadas do lado
	// do estabelecimento na confirmação, nunca somadas à cobrança do
	// cliente.
	metadata := map[string]string{
		"purpose":        models.PaymentPurposeAppointment,
		"appointment_id": strconv.FormatUint(uint64(ap.ID), 10),
		"is_deposit":     strconv.FormatBool(isDeposit),
		"debt_ids":       strings.Join(debtIDs, ","),
		"recovered_fees": fmt.Sprintf("%.2f", est.PendingPlatformFees),
	}

	user, err := uc.repo.GetUser(ctx, ap.UserID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Intent no provedor (fora de transação de banco)
	// --------------------------------------------------
	intent, err := uc.provider.CreateIntent(ctx, payments.CreateIntentInput{
		UserID:      ap.UserID,
		Email:       user.Email,
		Amount:      amount,
		Currency:    "BRL",
		Description: fmt.Sprintf("agendamento #%d", ap.ID),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Registro local, chaveado pelo id do provedor
	// --------------------------------------------------
	apID := ap.ID
	p := &models.Payment{
		UserID:            ap.UserID,
		EstablishmentID:   est.ID,
		AppointmentID:     &apID,
		Purpose:           models.PaymentPurposeAppointment,
		Provider:          uc.provider.Name(),
		ProviderPaymentID: intent.ProviderPaymentID,
		Amount:            amount,
		Currency:          "BRL",
		Status:            models.PaymentPending,
		Metadata: models.JSONMap{
			"appointment_id": metadata["appointment_id"],
			"is_deposit":     metadata["is_deposit"],
			"debt_ids":       metadata["debt_ids"],
			"recovered_fees": metadata["recovered_fees"],
		},
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
