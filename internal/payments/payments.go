package payments

import (
	"context"
	"fmt"
	"time"
)

// ===============================
// Payment provider port
// ===============================

// Statuses normalizados devolvidos pelos provedores.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Tempo máximo de uma chamada ao provedor; nunca roda dentro de transação
// de banco.
const providerTimeout = 10 * time.Second

type CreateIntentInput struct {
	UserID      uint
	Email       string
	Amount      float64
	Currency    string
	Description string

	// Carimbado no provedor e devolvido intacto no webhook
	// (appointment_id, debt_ids, is_deposit, recovered_fees...).
	Metadata map[string]string
}

type Intent struct {
	ProviderPaymentID string
	Status            string

	// Stripe
	ClientSecret string

	// MercadoPago (PIX)
	QRCode       string
	QRCodeBase64 string
}

type WebhookEvent struct {
	ProviderPaymentID string
	Status            string
	Amount            float64
	Metadata          map[string]string
}

// Provider abstrai o gateway. Webhooks chegam pelo menos uma vez; o
// consumidor precisa ser idempotente por ProviderPaymentID.
type Provider interface {
	Name() string

	CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error)

	// ResolveWebhook interpreta a entrega; devolve nil quando o evento não
	// interessa (tipo desconhecido, ping).
	ResolveWebhook(ctx context.Context, body []byte, headers map[string]string) (*WebhookEvent, error)

	Refund(ctx context.Context, providerPaymentID string, amount float64) error
}

// ExternalServiceError: provedor fora do ar ou recusando; retryable, sem
// deixar o agendamento em estado inconsistente.
type ExternalServiceError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("payment provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func externalErr(provider, op string, err error) error {
	return &ExternalServiceError{Provider: provider, Op: op, Err: err}
}
