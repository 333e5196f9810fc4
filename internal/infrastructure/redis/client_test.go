package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expireCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	incr        map[string]int64
	expireCalls []expireCall
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: make(map[string]int64)}
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.incr[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.incr, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestAttemptLimiter_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	l := &AttemptLimiter{store: mock}

	n, err := l.Failures(ctx, "Gerente@Tienda.com")
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 1; i <= 3; i++ {
		n, err = l.RecordFailure(ctx, "gerente@tienda.com", 10*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	require.Len(t, mock.expireCalls, 1, "la ventana se abre solo en el primer fallo")
	assert.Equal(t, "greenstore:approval_attempts:gerente@tienda.com", mock.expireCalls[0].key)
	assert.Equal(t, 10*time.Minute, mock.expireCalls[0].ttl)

	n, err = l.Failures(ctx, "GERENTE@tienda.com")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "la clave no distingue mayúsculas")

	require.NoError(t, l.Reset(ctx, "gerente@tienda.com"))
	n, err = l.Failures(ctx, "gerente@tienda.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}
