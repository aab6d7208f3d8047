package payments

import (
	"fmt"

	"github.com/navaro-app/navaro-api/internal/config"
)

// NewProvider monta o gateway configurado em PAYMENT_PROVIDER.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.PaymentProvider {
	case "stripe", "":
		return NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret), nil
	case "mercadopago":
		return NewMercadoPago(cfg.MPAccessToken)
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}
