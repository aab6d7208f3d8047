package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainAppointment "github.com/navaro-app/navaro-api/internal/domain/appointment"
	domainQueue "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// ======================================================
// ERRORS → HTTP
// ======================================================

var businessMessages = map[string]string{
	"invalid_phone":              "Telefone inválido.",
	"phone_already_registered":   "Telefone já cadastrado.",
	"invalid_referral_code":      "Código de indicação inválido.",
	"invalid_email_domain":       "O domínio do e-mail informado não parece ser válido.",
	"invalid_credentials":        "E-mail ou senha incorretos.",
	"invalid_or_expired_code":    "Código inválido ou expirado.",
	"account_disabled":           "Conta desativada.",
	"invalid_date_or_time":       "Data ou hora inválida.",
	"service_or_bundle_required": "Informe um serviço ou um combo.",
	"invalid_status":             "Status inválido.",
	"appointment_not_found":      "Agendamento não encontrado.",
	"appointment_not_payable":    "Agendamento não está aguardando pagamento.",
	"payment_not_found":          "Pagamento não encontrado.",
	"payment_not_refundable":     "Pagamento não pode ser estornado.",
	"invalid_amount":             "Valor inválido.",
	"already_in_queue":           "Você já está na fila.",
	"queue_entry_not_found":      "Entrada da fila não encontrada.",
	"establishment_not_found":    "Estabelecimento não encontrado.",
	"staff_not_found":            "Profissional não encontrado.",
	"service_not_found":          "Serviço não encontrado.",
	"bundle_not_found":           "Combo não encontrado.",
	"user_not_found":             "Usuário não encontrado.",
	"slug_already_exists":        "Endereço público já está em uso.",
	"invalid_goal_type":          "Tipo de meta inválido.",
	"invalid_target_value":       "Valor alvo inválido.",
	"invalid_period":             "Período inválido.",
}

func businessMessage(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return "Não foi possível completar a operação."
}

// respondError traduz os erros das camadas de domínio e usecase para o
// status HTTP do contrato da API.
func respondError(c *gin.Context, err error) {

	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		httperr.Unprocessable(c, ve.Code, ve.Message)
		return
	}

	var apErr *domainAppointment.StateError
	if errors.As(err, &apErr) {
		httperr.Conflict(c, "invalid_transition", apErr.Error())
		return
	}

	var qErr *domainQueue.StateError
	if errors.As(err, &qErr) {
		httperr.Conflict(c, "invalid_transition", qErr.Error())
		return
	}

	if errors.Is(err, wallet.ErrInsufficientFunds) {
		httperr.BadRequest(c, "insufficient_funds", "Saldo insuficiente na carteira.")
		return
	}

	var extErr *payments.ExternalServiceError
	if errors.As(err, &extErr) {
		httperr.BadGateway(c, "payment_provider_unavailable", "Provedor de pagamento indisponível.")
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		switch code {
		case "invalid_credentials", "invalid_or_expired_code", "account_disabled":
			httperr.Unauthorized(c, code, businessMessage(code))
		case "appointment_not_found", "payment_not_found", "queue_entry_not_found",
			"establishment_not_found", "staff_not_found", "service_not_found",
			"bundle_not_found", "user_not_found":
			httperr.NotFound(c, code, businessMessage(code))
		default:
			httperr.BadRequest(c, code, businessMessage(code))
		}
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro "+name+" inválido.")
		return 0, false
	}
	return uint(v), true
}
