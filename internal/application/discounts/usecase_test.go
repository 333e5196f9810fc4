package discounts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenstore-api/internal/application/discounts"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newUseCase() (*memory.Store, *discounts.UseCase) {
	s := memory.New()
	return s, discounts.NewUseCase(s, s.Repos())
}

func TestCreate_ValoresPorDefectoYAuditoria(t *testing.T) {
	s, uc := newUseCase()

	d, err := uc.Create(context.Background(), discounts.Input{
		Name: ptr(" Martes verde "), Type: ptr(entity.DiscountPercent), Value: dec("15"), Active: ptr(true),
	}, "gerente-1")

	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "Martes verde", d.Name)
	assert.Equal(t, entity.TargetAll, d.TargetType)
	assert.Equal(t, entity.StackingExclusive, d.StackingRule)

	logs := s.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditDiscountCreated, logs[0].Action)
	assert.Equal(t, "gerente-1", logs[0].PerformedBy)
}

func TestCreate_Validaciones(t *testing.T) {
	s, uc := newUseCase()
	s.PutSetting(entity.SettingMaxDiscount, "20")

	cases := map[string]struct {
		in   discounts.Input
		kind domain.Kind
		err  error
	}{
		"sin nombre":       {in: discounts.Input{Type: ptr(entity.DiscountFixed), Value: dec("1")}, kind: domain.KindInvalid},
		"tipo inválido":    {in: discounts.Input{Name: ptr("x"), Type: ptr("2x1")}, kind: domain.KindInvalid},
		"valor negativo":   {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountFixed), Value: dec("-1")}, kind: domain.KindInvalid},
		"alcance sin id":   {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountFixed), TargetType: ptr(entity.TargetProduct)}, kind: domain.KindInvalid},
		"día inválido":     {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountFixed), DaysOfWeek: []int{7}}, kind: domain.KindInvalid},
		"hora inválida":    {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountFixed), StartsTime: ptr("25:00")}, kind: domain.KindInvalid},
		"combo incompleto": {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountFixedBundle), Value: dec("10")}, err: domain.ErrBundleIncomplete},
		"sobre el techo":   {in: discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountPercent), Value: dec("25")}, err: domain.ErrDiscountCeiling},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in, "g")
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			be, ok := domain.AsBusiness(err)
			require.True(t, ok, "se esperaba rechazo de negocio, llegó %v", err)
			assert.Equal(t, tc.kind, be.Kind)
		})
	}
	assert.Empty(t, s.AuditLogs())
}

func TestCreate_PorcentajeIgualAlTechoSePermite(t *testing.T) {
	s, uc := newUseCase()
	s.PutSetting(entity.SettingMaxDiscount, "20")

	_, err := uc.Create(context.Background(), discounts.Input{Name: ptr("x"), Type: ptr(entity.DiscountPercent), Value: dec("20")}, "g")
	assert.NoError(t, err)
}

func TestUpdate_Parcial(t *testing.T) {
	s, uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, discounts.Input{
		Name: ptr("Combo arroz"), Type: ptr(entity.DiscountFixedBundle), Value: dec("10"), BuyQuantity: dec("3"), Active: ptr(true),
	}, "g")
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, discounts.Input{Active: ptr(false), Priority: ptr(2)}, "g2")
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 2, updated.Priority)
	assert.Equal(t, "Combo arroz", updated.Name)
	assert.True(t, updated.BuyQuantity.Equal(decimal.NewFromInt(3)))

	_, err = uc.Update(ctx, created.ID, discounts.Input{BuyQuantity: dec("0")}, "g2")
	assert.ErrorIs(t, err, domain.ErrBundleIncomplete)

	_, err = uc.Update(ctx, "no-existe", discounts.Input{Active: ptr(true)}, "g2")
	assert.ErrorIs(t, err, domain.ErrDiscountNotFound)

	logs := s.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditDiscountUpdated, logs[1].Action)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active)
}
