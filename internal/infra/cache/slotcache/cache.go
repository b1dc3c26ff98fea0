package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// Cache кэш списков доступных слотов в Redis
//
// Путь чтения допускает устаревание: показанный свободным слот может быть
// занят мгновением позже и будет отклонён при создании бронирования.
// Занятость не зависит от запрошенной услуги, поэтому ключ - только дата
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш слотов с указанным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закэшированный список слотов на дату
// Любая ошибка Redis трактуется как промах
func (c *Cache) Get(ctx context.Context, date time.Time) ([]types.TimeString, bool) {
	raw, err := c.client.Get(ctx, key(date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []types.TimeString
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

// Set сохраняет список слотов на дату
func (c *Cache) Set(ctx context.Context, date time.Time, slots []types.TimeString) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slotcache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("slotcache: set: %w", err)
	}

	return nil
}

// InvalidateDate сбрасывает кэш на дату
// Вызывается после создания или отмены бронирования
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, key(date)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("slotcache: del: %w", err)
	}
	return nil
}

func key(date time.Time) string {
	return "slots:" + date.Format(domain.DateFormat)
}
