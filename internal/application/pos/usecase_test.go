package pos_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/pos"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type env struct {
	store     *memory.Store
	uc        *pos.UseCase
	approvals *approval.Service
	manager   entity.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.New()
	m, err := s.PutUser("gerente@greenstore.local", "clave", "Gerente", entity.RoleManager)
	require.NoError(t, err)
	ap := approval.NewService(s, s.Repos(), "secreto", memory.NewAttemptLimiter(), metrics.Nop())
	return &env{store: s, uc: pos.NewUseCase(s, ap), approvals: ap, manager: m}
}

func (e *env) token(t *testing.T, action string) string {
	t.Helper()
	issued, err := e.approvals.Issue(context.Background(), approval.IssueInput{
		Email: "gerente@greenstore.local", Password: "clave", Action: action, Reason: "autorizado en caja",
	})
	require.NoError(t, err)
	return issued.Token
}

func (e *env) lastAudit(t *testing.T) entity.AuditLog {
	t.Helper()
	logs := e.store.AuditLogs()
	require.NotEmpty(t, logs)
	return logs[len(logs)-1]
}

func TestRemoveItem_SiempreRequiereAprobacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.RemoveItem(ctx, "Leche", "cliente desistió", "caja-1", "")
	assert.ErrorIs(t, err, domain.ErrApprovalRequired)

	_, err = e.uc.RemoveItem(ctx, "Leche", "cliente desistió", "caja-1", e.token(t, entity.ActionCancelSale))
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid)

	out, err := e.uc.RemoveItem(ctx, "Leche", "cliente desistió", "caja-1", e.token(t, entity.ActionRemoveItem))
	require.NoError(t, err)
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, e.manager.ID, *out.ApprovedBy)

	entry := e.lastAudit(t)
	assert.Equal(t, entity.ActionRemoveItem, entry.Action)
	assert.Equal(t, "caja-1", entry.PerformedBy)
	require.NotNil(t, entry.ApprovedBy)
	assert.Equal(t, e.manager.ID, *entry.ApprovedBy)
	var details map[string]any
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, "Leche", details["item"])
}

func TestCancelSale(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.CancelSale(ctx, "error de cobro", -1, "caja-1", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tok := e.token(t, entity.ActionCancelSale)
	_, err = e.uc.CancelSale(ctx, "error de cobro", 3, "caja-1", tok)
	require.NoError(t, err)
	assert.Equal(t, entity.ActionCancelSale, e.lastAudit(t).Action)

	_, err = e.uc.CancelSale(ctx, "error de cobro", 3, "caja-1", tok)
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid, "el token es de un solo uso")
}

func TestDiscountOverride_SinCompuertas(t *testing.T) {
	e := newEnv(t)

	out, err := e.uc.DiscountOverride(context.Background(), pos.OverrideInput{Amount: d("50"), Reason: "cortesía", UserID: "caja-1"})

	require.NoError(t, err)
	assert.Nil(t, out.ApprovedBy)
	assert.Nil(t, e.lastAudit(t).ApprovedBy)
}

func TestDiscountOverride_SubtotalObligatorio(t *testing.T) {
	e := newEnv(t)
	e.store.PutSetting(entity.SettingApprovalThreshold, "10")
	ctx := context.Background()

	_, err := e.uc.DiscountOverride(ctx, pos.OverrideInput{Amount: d("5"), Reason: "cortesía"})
	assert.ErrorIs(t, err, domain.ErrSubtotalRequired)

	// monto cero no necesita subtotal
	_, err = e.uc.DiscountOverride(ctx, pos.OverrideInput{Amount: d("0"), Reason: "cortesía"})
	assert.NoError(t, err)
}

func TestDiscountOverride_Techo(t *testing.T) {
	e := newEnv(t)
	e.store.PutSetting(entity.SettingMaxDiscount, "20")

	_, err := e.uc.DiscountOverride(context.Background(), pos.OverrideInput{Amount: d("21"), Subtotal: d("100"), Reason: "cortesía"})

	assert.ErrorIs(t, err, domain.ErrDiscountCeiling)
	assert.Empty(t, e.store.AuditLogs())
}

func TestDiscountOverride_UmbralInclusivo(t *testing.T) {
	e := newEnv(t)
	e.store.PutSetting(entity.SettingMaxDiscount, "50")
	e.store.PutSetting(entity.SettingApprovalThreshold, "10")
	ctx := context.Background()

	out, err := e.uc.DiscountOverride(ctx, pos.OverrideInput{Amount: d("9.99"), Subtotal: d("100"), Reason: "cortesía"})
	require.NoError(t, err)
	assert.Nil(t, out.ApprovedBy)

	_, err = e.uc.DiscountOverride(ctx, pos.OverrideInput{Amount: d("10"), Subtotal: d("100"), Reason: "cortesía"})
	assert.ErrorIs(t, err, domain.ErrApprovalRequired)

	out, err = e.uc.DiscountOverride(ctx, pos.OverrideInput{
		Amount: d("10"), Subtotal: d("100"), Reason: "cortesía", Token: e.token(t, entity.ActionDiscountOverride),
	})
	require.NoError(t, err)
	require.NotNil(t, out.ApprovedBy)
	assert.True(t, out.Percent.Equal(d("10")))
	assert.Equal(t, entity.ActionDiscountOverride, e.lastAudit(t).Action)
}

func TestDiscountOverride_ValidaEntrada(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.DiscountOverride(context.Background(), pos.OverrideInput{Amount: d("-1"), Subtotal: d("10"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.uc.DiscountOverride(context.Background(), pos.OverrideInput{Amount: d("1"), Subtotal: d("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
