package approval_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

type fixture struct {
	store   *memory.Store
	svc     *approval.Service
	now     time.Time
	manager entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }
	f.store = memory.New().WithClock(clock)
	var err error
	f.manager, err = f.store.PutUser("gerente@greenstore.local", "clave-segura", "Gerente", entity.RoleManager)
	require.NoError(t, err)
	_, err = f.store.PutUser("super@greenstore.local", "clave-super", "Supervisor", entity.RoleSupervisor)
	require.NoError(t, err)

	limiter := memory.NewAttemptLimiter().WithClock(clock)
	f.svc = approval.NewService(f.store, f.store.Repos(), "clave-hmac-de-prueba", limiter, metrics.Nop()).WithClock(clock)
	return f
}

func (f *fixture) issue(t *testing.T, action string) *approval.Issued {
	t.Helper()
	issued, err := f.svc.Issue(context.Background(), approval.IssueInput{
		Email: "gerente@greenstore.local", Password: "clave-segura", Action: action, Reason: "ajuste de inventario",
	})
	require.NoError(t, err)
	return issued
}

func (f *fixture) consume(token, action string) (*entity.Approval, error) {
	var got *entity.Approval
	err := f.store.Run(context.Background(), func(ctx context.Context, r repository.Repos) error {
		a, err := f.svc.Consume(ctx, r, token, action)
		got = a
		return err
	})
	return got, err
}

func TestIssue_EmiteTokenYAudita(t *testing.T) {
	f := newFixture(t)

	issued := f.issue(t, entity.ActionStockAdjust)

	assert.Len(t, issued.Token, 64)
	assert.Equal(t, f.now.Add(approval.TTL), issued.ExpiresAt)
	assert.Equal(t, f.manager.ID, issued.ApprovedBy)

	stored := f.store.Approvals()
	require.Len(t, stored, 1)
	assert.NotEqual(t, issued.Token, stored[0].TokenHash, "solo se persiste el hash")
	assert.JSONEq(t, `{}`, string(stored[0].Metadata))

	logs := f.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditApprovalGranted, logs[0].Action)
	require.NotNil(t, logs[0].ApprovedBy)
	assert.Equal(t, f.manager.ID, *logs[0].ApprovedBy)
}

func TestConsume_UnSoloUso(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t, entity.ActionStockAdjust)

	a, err := f.consume(issued.Token, entity.ActionStockAdjust)
	require.NoError(t, err)
	assert.Equal(t, f.manager.ID, a.ApprovedBy)

	_, err = f.consume(issued.Token, entity.ActionStockAdjust)
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid)
}

func TestConsume_AccionDistintaEsInvalida(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t, entity.ActionStockAdjust)

	_, err := f.consume(issued.Token, entity.ActionCancelSale)
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid)

	_, err = f.consume(issued.Token, entity.ActionStockAdjust)
	assert.NoError(t, err, "el intento con otra acción no consume el token")
}

func TestConsume_Expiracion(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t, entity.ActionStockLoss)

	f.now = f.now.Add(approval.TTL + time.Second)
	_, err := f.consume(issued.Token, entity.ActionStockLoss)
	assert.ErrorIs(t, err, domain.ErrApprovalExpired)
	assert.NotErrorIs(t, err, domain.ErrApprovalInvalid, "expirado se distingue de inválido")
}

func TestConsume_EnElLimiteSigueVigente(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t, entity.ActionStockLoss)

	f.now = f.now.Add(approval.TTL)
	_, err := f.consume(issued.Token, entity.ActionStockLoss)
	assert.NoError(t, err)
}

func TestConsume_SinToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.consume("  ", entity.ActionRemoveItem)
	assert.ErrorIs(t, err, domain.ErrApprovalRequired)

	_, err = f.consume("no-existe", entity.ActionRemoveItem)
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid)
}

func TestConsume_RollbackNoQuemaElToken(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t, entity.ActionCancelSale)
	boom := errors.New("falla posterior")

	err := f.store.Run(context.Background(), func(ctx context.Context, r repository.Repos) error {
		if _, err := f.svc.Consume(ctx, r, issued.Token, entity.ActionCancelSale); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = f.consume(issued.Token, entity.ActionCancelSale)
	assert.NoError(t, err)
}

func TestIssue_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   approval.IssueInput
		want error
	}{
		{"acción inválida", approval.IssueInput{Email: "gerente@greenstore.local", Password: "clave-segura", Action: "borrar_todo"}, domain.ErrInvalidAction},
		{"email desconocido", approval.IssueInput{Email: "nadie@greenstore.local", Password: "x", Action: entity.ActionRemoveItem}, domain.ErrInvalidCredentials},
		{"contraseña incorrecta", approval.IssueInput{Email: "gerente@greenstore.local", Password: "otra", Action: entity.ActionRemoveItem}, domain.ErrInvalidCredentials},
		{"rol insuficiente", approval.IssueInput{Email: "super@greenstore.local", Password: "clave-super", Action: entity.ActionRemoveItem}, domain.ErrApproverRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Issue(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.Approvals())
}

func TestIssue_BloqueoPorIntentos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.PutSetting(entity.SettingLoginAttempts, "2")
	f.store.PutSetting(entity.SettingLockMinutes, "5")
	bad := approval.IssueInput{Email: "gerente@greenstore.local", Password: "mal", Action: entity.ActionStockAdjust}
	good := approval.IssueInput{Email: "gerente@greenstore.local", Password: "clave-segura", Action: entity.ActionStockAdjust}

	for i := 0; i < 2; i++ {
		_, err := f.svc.Issue(ctx, bad)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err := f.svc.Issue(ctx, good)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts, "bloqueado aun con la contraseña correcta")

	f.now = f.now.Add(5 * time.Minute)
	_, err = f.svc.Issue(ctx, good)
	assert.NoError(t, err, "la ventana de bloqueo terminó")
}
