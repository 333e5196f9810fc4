package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

type attemptWindow struct {
	count     int
	expiresAt time.Time
}

// AttemptLimiter contador de fallos en proceso; reemplaza a Redis cuando no está configurado.
type AttemptLimiter struct {
	mu      sync.Mutex
	windows map[string]attemptWindow
	now     func() time.Time
}

// NewAttemptLimiter construye el limitador con el reloj del sistema.
func NewAttemptLimiter() *AttemptLimiter {
	return &AttemptLimiter{windows: map[string]attemptWindow{}, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (l *AttemptLimiter) WithClock(now func() time.Time) *AttemptLimiter {
	l.now = now
	return l
}

func (l *AttemptLimiter) Failures(_ context.Context, subject string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current(strings.ToLower(subject)).count, nil
}

func (l *AttemptLimiter) RecordFailure(_ context.Context, subject string, window time.Duration) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := strings.ToLower(subject)
	w := l.current(key)
	if w.count == 0 {
		w.expiresAt = l.now().Add(window)
	}
	w.count++
	l.windows[key] = w
	return w.count, nil
}

func (l *AttemptLimiter) Reset(_ context.Context, subject string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, strings.ToLower(subject))
	return nil
}

func (l *AttemptLimiter) current(key string) attemptWindow {
	w, ok := l.windows[key]
	if !ok || !l.now().Before(w.expiresAt) {
		delete(l.windows, key)
		return attemptWindow{}
	}
	return w
}
