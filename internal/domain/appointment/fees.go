package appointment

import (
	"math"
	"time"
)

// ===============================
// Financial rules
// ===============================

// Janela de cancelamento tardio: cancelar a menos de 30 minutos do horário
// marcado gera multa fixa (quando configurada).
const LateCancelWindow = 30 * time.Minute

// Percentual de taxa de plataforma por plano de assinatura, aplicado sobre
// atendimentos pagos em dinheiro.
var tierFeePercent = map[string]float64{
	"free":     0.06,
	"trial":    0.05,
	"bronze":   0.05,
	"silver":   0.04,
	"gold":     0.03,
	"platinum": 0.02,
}

const defaultTierFeePercent = 0.05

func TierFeePercent(tier string) float64 {
	if pct, ok := tierFeePercent[tier]; ok {
		return pct
	}
	return defaultTierFeePercent
}

// PlatformFee calcula a taxa acumulada de um atendimento em dinheiro.
func PlatformFee(total float64, tier string) float64 {
	return Round2(total * TierFeePercent(tier))
}

// LateCancellationFee devolve a multa de cancelamento tardio, ou 0 quando
// fora da janela, no passado, ou sem multa configurada.
func LateCancellationFee(now, scheduledAt time.Time, feeFixed float64) float64 {
	if feeFixed <= 0 {
		return 0
	}
	if !now.Before(scheduledAt) {
		return 0
	}
	if scheduledAt.Sub(now) >= LateCancelWindow {
		return 0
	}
	return Round2(feeFixed)
}

// NoShowFee devolve a multa de não comparecimento, ou 0 quando o percentual
// não está configurado ou o valor resultante não é positivo.
func NoShowFee(total, percent float64) float64 {
	if percent <= 0 {
		return 0
	}
	fee := Round2(total * percent / 100)
	if fee <= 0 {
		return 0
	}
	return fee
}

// DepositAmount calcula o sinal exigido na criação.
func DepositAmount(total, depositPercent float64) float64 {
	if depositPercent <= 0 {
		return 0
	}
	return Round2(total * depositPercent / 100)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
