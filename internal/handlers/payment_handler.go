package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	ucPayment "github.com/navaro-app/navaro-api/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	createIntent *ucPayment.CreateIntent
	walletPay    *ucPayment.PayWithWallet
	refund       *ucPayment.RefundPayment
	topup        *ucPayment.TopUpWallet
	webhook      *ucPayment.HandleWebhook
}

func NewPaymentHandler(
	createIntent *ucPayment.CreateIntent,
	walletPay *ucPayment.PayWithWallet,
	refund *ucPayment.RefundPayment,
	topup *ucPayment.TopUpWallet,
	webhook *ucPayment.HandleWebhook,
) *PaymentHandler {
	return &PaymentHandler{
		createIntent: createIntent,
		walletPay:    walletPay,
		refund:       refund,
		topup:        topup,
		webhook:      webhook,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PaymentIntentRequest struct {
	AppointmentID uint `json:"appointment_id" binding:"required"`
}

type WalletTopUpRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.createIntent.Execute(c.Request.Context(), ucPayment.CreateIntentInput{
		UserID:        userID,
		AppointmentID: req.AppointmentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *PaymentHandler) PayWithWallet(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	payment, err := h.walletPay.Execute(c.Request.Context(), userID, req.AppointmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, payment)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.refund.Execute(c.Request.Context(), estID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, payment)
}

func (h *PaymentHandler) TopUp(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req WalletTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.topup.Execute(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// WEBHOOK
// ======================================================

// Webhook responde 200 para tudo que foi processado OU ignorado de
// propósito; o provedor só deve reenviar em falha nossa.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if c.Param("provider") != h.webhook.ProviderName() {
		httperr.NotFound(c, "unknown_provider", "Provedor não configurado.")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo ilegível.")
		return
	}

	headers := map[string]string{}
	for k := range c.Request.Header {
		headers[k] = c.GetHeader(k)
	}

	if err := h.webhook.Execute(c.Request.Context(), body, headers); err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"received": true})
}
