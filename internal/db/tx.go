package db

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const serializableAttempts = 3

// SerializableTx roda fn numa transação SERIALIZABLE, com retry em falha
// de serialização (40001) e deadlock. A checagem de conflito da reserva é
// um read simples; é o isolamento serializable que garante que dois
// agendamentos sobrepostos nunca commitam juntos.
func SerializableTx(ctx context.Context, g *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < serializableAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		err = g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})

		if err == nil || !IsRetryableTxError(err) {
			return err
		}
	}
	return err
}

func backoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 50 * time.Millisecond
	jitter := time.Duration(rand.Intn(50)) * time.Millisecond
	return base + jitter
}
