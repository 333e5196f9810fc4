// Package redis contiene el cliente Redis y el contador de intentos fallidos de aprobación.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/greenstore-api/pkg/config"
)

const keyNamespace = "greenstore"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// New abre la conexión y verifica con PING.
func New(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis address is required")
	}
	raw := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return raw, nil
}

// AttemptLimiter cuenta fallos de re-autenticación por clave en una ventana fija (INCR + EXPIRE).
type AttemptLimiter struct {
	store cmdable
}

// NewAttemptLimiter construye el limitador sobre un cliente go-redis.
func NewAttemptLimiter(client *redis.Client) *AttemptLimiter {
	return &AttemptLimiter{store: client}
}

func attemptsKey(subject string) string {
	return strings.Join([]string{keyNamespace, "approval_attempts", strings.ToLower(subject)}, ":")
}

// Failures devuelve los fallos acumulados en la ventana vigente.
func (l *AttemptLimiter) Failures(ctx context.Context, subject string) (int, error) {
	v, err := l.store.Get(ctx, attemptsKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read attempts: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse attempts: %w", err)
	}
	return n, nil
}

// RecordFailure suma un fallo; el primer fallo abre la ventana de duración window.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, subject string, window time.Duration) (int, error) {
	key := attemptsKey(subject)
	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr attempts: %w", err)
	}
	if count == 1 && window > 0 {
		if err := l.store.Expire(ctx, key, window).Err(); err != nil {
			return int(count), fmt.Errorf("expire attempts: %w", err)
		}
	}
	return int(count), nil
}

// Reset borra el contador tras una autenticación correcta.
func (l *AttemptLimiter) Reset(ctx context.Context, subject string) error {
	if err := l.store.Del(ctx, attemptsKey(subject)).Err(); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}
