package payments

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// ===============================
// Stripe
// ===============================

type Stripe struct {
	api           *client.API
	webhookSecret string
}

func NewStripe(secretKey, webhookSecret string) *Stripe {
	return &Stripe{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (s *Stripe) Name() string { return "stripe" }

func (s *Stripe) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toCents(in.Amount)),
		Currency:    stripe.String(strings.ToLower(in.Currency)),
		Description: stripe.String(in.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if in.Email != "" {
		params.ReceiptEmail = stripe.String(in.Email)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, externalErr("stripe", "create_intent", err)
	}

	return &Intent{
		ProviderPaymentID: pi.ID,
		Status:            StatusPending,
		ClientSecret:      pi.ClientSecret,
	}, nil
}

func (s *Stripe) ResolveWebhook(ctx context.Context, body []byte, headers map[string]string) (*WebhookEvent, error) {
	var event stripe.Event

	if s.webhookSecret != "" {
		ev, err := webhook.ConstructEvent(body, headers["Stripe-Signature"], s.webhookSecret)
		if err != nil {
			return nil, externalErr("stripe", "verify_webhook", err)
		}
		event = ev
	} else if err := json.Unmarshal(body, &event); err != nil {
		return nil, externalErr("stripe", "parse_webhook", err)
	}

	var status string
	switch event.Type {
	case "payment_intent.succeeded":
		status = StatusSucceeded
	case "payment_intent.payment_failed":
		status = StatusFailed
	default:
		return nil, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, externalErr("stripe", "parse_webhook", err)
	}

	return &WebhookEvent{
		ProviderPaymentID: pi.ID,
		Status:            status,
		Amount:            float64(pi.Amount) / 100,
		Metadata:          pi.Metadata,
	}, nil
}

func (s *Stripe) Refund(ctx context.Context, providerPaymentID string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(providerPaymentID),
	}
	params.Context = ctx
	if amount > 0 {
		params.Amount = stripe.Int64(toCents(amount))
	}

	if _, err := s.api.Refunds.New(params); err != nil {
		return externalErr("stripe", "refund", err)
	}
	return nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
