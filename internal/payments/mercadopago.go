package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

// ===============================
// MercadoPago (PIX)
// ===============================

type MercadoPago struct {
	payments payment.Client
	refunds  refund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) Name() string { return "mercadopago" }

func (m *MercadoPago) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	metadata := make(map[string]any, len(in.Metadata))
	for k, v := range in.Metadata {
		metadata[k] = v
	}

	resp, err := m.payments.Create(ctx, payment.Request{
		TransactionAmount: in.Amount,
		Description:       in.Description,
		PaymentMethodID:   "pix",
		Payer:             &payment.PayerRequest{Email: in.Email},
		Metadata:          metadata,
	})
	if err != nil {
		return nil, externalErr("mercadopago", "create_intent", err)
	}

	return &Intent{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		Status:            StatusPending,
		QRCode:            resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:      resp.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

// ResolveWebhook: o MercadoPago manda só o id; o estado vem de uma consulta.
func (m *MercadoPago) ResolveWebhook(ctx context.Context, body []byte, _ map[string]string) (*WebhookEvent, error) {
	var note struct {
		Type string `json:"type"`
		Data struct {
			ID any `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, externalErr("mercadopago", "parse_webhook", err)
	}
	if note.Type != "payment" {
		return nil, nil
	}

	id, err := toPaymentID(note.Data.ID)
	if err != nil {
		return nil, externalErr("mercadopago", "parse_webhook", err)
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	resp, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, externalErr("mercadopago", "get_payment", err)
	}

	var status string
	switch resp.Status {
	case "approved":
		status = StatusSucceeded
	case "rejected", "cancelled":
		status = StatusFailed
	default:
		status = StatusPending
	}

	metadata := make(map[string]string, len(resp.Metadata))
	for k, v := range resp.Metadata {
		metadata[k] = fmt.Sprint(v)
	}

	return &WebhookEvent{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		Status:            status,
		Amount:            resp.TransactionAmount,
		Metadata:          metadata,
	}, nil
}

func (m *MercadoPago) Refund(ctx context.Context, providerPaymentID string, amount float64) error {
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return externalErr("mercadopago", "refund", err)
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	if amount > 0 {
		_, err = m.refunds.CreatePartialRefund(ctx, id, amount)
	} else {
		_, err = m.refunds.Create(ctx, id)
	}
	if err != nil {
		return externalErr("mercadopago", "refund", err)
	}
	return nil
}

func toPaymentID(raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("unexpected payment id type %T", raw)
	}
}
