package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navaro-app/navaro-api/internal/models"
)

// ===============================
// Platform settings
// ===============================

// Chaves conhecidas.
const (
	KeyCashbackEnabled   = "CASHBACK_ENABLED"
	KeyCashbackPercent   = "CASHBACK_PERCENT"
	KeyReferralBonus     = "REFERRAL_BONUS_AMOUNT"
	KeyQueueNotifyEnable = "QUEUE_NOTIFICATIONS_ENABLED"
)

const cacheTTL = 5 * time.Minute

// Service lê parâmetros do banco com cache em redis; Set grava e invalida.
type Service struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

func (s *Service) Get(ctx context.Context, key string) (string, bool) {
	cacheKey := "settings:" + key

	if s.cache != nil {
		if v, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			return v, true
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("settings: cache read %s: %v", key, err)
		}
	}

	var row models.SystemSetting
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		return "", false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, row.Value, cacheTTL).Err(); err != nil {
			log.Printf("settings: cache write %s: %v", key, err)
		}
	}
	return row.Value, true
}

func (s *Service) GetBool(ctx context.Context, key string, def bool) bool {
	v, ok := s.Get(ctx, key)
	if !ok {
		return def
	}
	return ParseBool(v, def)
}

func (s *Service) GetFloat(ctx context.Context, key string, def float64) float64 {
	v, ok := s.Get(ctx, key)
	if !ok {
		return def
	}
	return ParseFloat(v, def)
}

// Set grava (upsert por chave) e derruba o cache.
func (s *Service) Set(ctx context.Context, key, value, description string) error {
	row := models.SystemSetting{Key: key, Value: value, Description: description}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("settings: set %s: %w", key, err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, "settings:"+key).Err(); err != nil {
			log.Printf("settings: cache invalidate %s: %v", key, err)
		}
	}
	return nil
}

func ParseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

func ParseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
