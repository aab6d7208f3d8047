package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierFeePercent(t *testing.T) {
	cases := map[string]float64{
		"free":     0.06,
		"trial":    0.05,
		"bronze":   0.05,
		"silver":   0.04,
		"gold":     0.03,
		"platinum": 0.02,
		"unknown":  0.05,
		"":         0.05,
	}
	for tier, want := range cases {
		assert.Equal(t, want, TierFeePercent(tier), "tier %q", tier)
	}
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, 6.0, PlatformFee(100, "free"))
	assert.Equal(t, 2.0, PlatformFee(100, "platinum"))
	assert.Equal(t, 1.67, PlatformFee(33.40, "free"))
}

func TestLateCancellationFee(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	// a 15 minutos do horário: multa cheia
	assert.Equal(t, 15.0, LateCancellationFee(now, now.Add(15*time.Minute), 15))

	// exatamente na janela de 30 minutos: sem multa
	assert.Equal(t, 0.0, LateCancellationFee(now, now.Add(30*time.Minute), 15))

	// com folga: sem multa
	assert.Equal(t, 0.0, LateCancellationFee(now, now.Add(2*time.Hour), 15))

	// horário já passou: cancelar atrasado não multa
	assert.Equal(t, 0.0, LateCancellationFee(now, now.Add(-10*time.Minute), 15))
	assert.Equal(t, 0.0, LateCancellationFee(now, now, 15))

	// sem multa configurada
	assert.Equal(t, 0.0, LateCancellationFee(now, now.Add(10*time.Minute), 0))
}

func TestNoShowFee(t *testing.T) {
	assert.Equal(t, 50.0, NoShowFee(100, 50))
	assert.Equal(t, 0.0, NoShowFee(100, 0))
	assert.Equal(t, 0.0, NoShowFee(0, 50))
	assert.Equal(t, 12.5, NoShowFee(25, 50))
}

func TestDepositAmount(t *testing.T) {
	assert.Equal(t, 30.0, DepositAmount(100, 30))
	assert.Equal(t, 0.0, DepositAmount(100, 0))
	assert.Equal(t, 16.67, DepositAmount(33.34, 50))
}
