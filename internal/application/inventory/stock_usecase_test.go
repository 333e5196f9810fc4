package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/inventory"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type fixture struct {
	store     *memory.Store
	uc        *inventory.StockUseCase
	approvals *approval.Service
	manager   entity.User
	product   entity.Product
}

func newFixture(t *testing.T, stock string) *fixture {
	t.Helper()
	s := memory.New()
	manager, err := s.PutUser("gerente@greenstore.local", "clave", "Gerente", entity.RoleManager)
	require.NoError(t, err)
	approvals := approval.NewService(s, s.Repos(), "secreto", memory.NewAttemptLimiter(), metrics.Nop())
	p := s.PutProduct(entity.Product{SKU: "ARR-1", Name: "Arroz", Price: d("10"), CurrentStock: d(stock), MinStock: d("5")})
	return &fixture{
		store:     s,
		uc:        inventory.NewStockUseCase(s, s.Repos(), approvals, metrics.Nop()),
		approvals: approvals,
		manager:   manager,
		product:   p,
	}
}

func (f *fixture) token(t *testing.T, action string) string {
	t.Helper()
	issued, err := f.approvals.Issue(context.Background(), approval.IssueInput{
		Email: "gerente@greenstore.local", Password: "clave", Action: action,
	})
	require.NoError(t, err)
	return issued.Token
}

func (f *fixture) stock(t *testing.T) decimal.Decimal {
	t.Helper()
	p, ok := f.store.Product(f.product.ID)
	require.True(t, ok)
	return p.CurrentStock
}

func TestAdjust_SinTechoNoPideAprobacion(t *testing.T) {
	f := newFixture(t, "20")

	res, err := f.uc.Adjust(context.Background(), inventory.AdjustInput{ProductID: f.product.ID, Delta: d("-5"), Reason: "conteo", UserID: "u1"})

	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("15")))
	assert.Nil(t, res.ApprovedBy)
	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.True(t, movs[0].Delta.Equal(d("-5")))
	logs := f.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionStockAdjust, logs[0].Action)
	assert.Nil(t, logs[0].ApprovedBy)
}

func TestAdjust_FronteraDelTecho(t *testing.T) {
	f := newFixture(t, "50")
	f.store.PutSetting(entity.SettingMaxStockAdjust, "100")
	ctx := context.Background()

	// 10 * 10 = 100: igual al techo, no requiere aprobación
	_, err := f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("10"), Reason: "conteo"})
	require.NoError(t, err)

	// 11 * 10 = 110: sin token se rechaza y no cambia nada
	_, err = f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("11"), Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrApprovalRequired)
	assert.True(t, f.stock(t).Equal(d("60")))
	assert.Len(t, f.store.Movements(), 1)

	res, err := f.uc.Adjust(ctx, inventory.AdjustInput{
		ProductID: f.product.ID, Delta: d("11"), Reason: "conteo", UserID: "u1",
		ApprovalToken: f.token(t, entity.ActionStockAdjust),
	})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("71")))
	require.NotNil(t, res.ApprovedBy)
	assert.Equal(t, f.manager.ID, *res.ApprovedBy)

	logs := f.store.AuditLogs()
	last := logs[len(logs)-1]
	assert.Equal(t, entity.ActionStockAdjust, last.Action)
	require.NotNil(t, last.ApprovedBy)
	assert.Equal(t, f.manager.ID, *last.ApprovedBy)
}

func TestAdjust_TokenDeOtraAccionEsInvalido(t *testing.T) {
	f := newFixture(t, "50")
	f.store.PutSetting(entity.SettingMaxStockAdjust, "1")

	_, err := f.uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: f.product.ID, Delta: d("3"), Reason: "conteo",
		ApprovalToken: f.token(t, entity.ActionStockLoss),
	})
	assert.ErrorIs(t, err, domain.ErrApprovalInvalid)
}

func TestAdjust_RechazaStockNegativo(t *testing.T) {
	f := newFixture(t, "4")

	_, err := f.uc.Adjust(context.Background(), inventory.AdjustInput{ProductID: f.product.ID, Delta: d("-5"), Reason: "conteo"})

	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, f.stock(t).Equal(d("4")))
	assert.Empty(t, f.store.Movements())
	assert.Empty(t, f.store.AuditLogs())
}

func TestAdjust_ValidaEntrada(t *testing.T) {
	f := newFixture(t, "4")
	ctx := context.Background()

	_, err := f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("0"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("1"), Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: "no-existe", Delta: d("1"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReportLoss(t *testing.T) {
	f := newFixture(t, "8")
	ctx := context.Background()

	res, err := f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("3"), Reason: "vencido", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("5")))

	losses := f.store.Losses()
	require.Len(t, losses, 1)
	assert.True(t, losses[0].Quantity.Equal(d("3")))
	assert.Equal(t, "u1", losses[0].ReportedBy)
	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeLoss, movs[0].Type)
	assert.True(t, movs[0].Delta.Equal(d("-3")))

	_, err = f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("6"), Reason: "robo"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, f.store.Losses(), 1, "el rechazo no deja registro de merma")
}

func TestReportLoss_CompuertaPorValor(t *testing.T) {
	f := newFixture(t, "20")
	f.store.PutSetting(entity.SettingMaxLosses, "50")
	ctx := context.Background()

	_, err := f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("6"), Reason: "rotura"})
	assert.ErrorIs(t, err, domain.ErrApprovalRequired)

	res, err := f.uc.ReportLoss(ctx, inventory.LossInput{
		ProductID: f.product.ID, Quantity: d("6"), Reason: "rotura", ApprovalToken: f.token(t, entity.ActionStockLoss),
	})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("14")))
}

func TestMove(t *testing.T) {
	f := newFixture(t, "2")
	ctx := context.Background()

	res, err := f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("5"), Type: entity.MovementTypeInbound, Reason: "compra"})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("7")))

	res, err = f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("7"), Type: entity.MovementTypeOutbound, Reason: "traslado"})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.IsZero())

	_, err = f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("1"), Type: entity.MovementTypeOutbound, Reason: "traslado"})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	_, err = f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("1"), Type: "transfer", Reason: "x"})
	be, ok := domain.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindInvalid, be.Kind)

	logs := f.store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditStockMove, logs[0].Action)
}

func TestStockNuncaNegativo(t *testing.T) {
	f := newFixture(t, "5")
	ctx := context.Background()
	ops := []func() error{
		func() error {
			_, err := f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("-3"), Reason: "r"})
			return err
		},
		func() error {
			_, err := f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("2"), Reason: "r"})
			return err
		},
		func() error {
			_, err := f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("4"), Type: entity.MovementTypeOutbound, Reason: "r"})
			return err
		},
		func() error {
			_, err := f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("1"), Type: entity.MovementTypeInbound, Reason: "r"})
			return err
		},
	}
	for i := 0; i < 40; i++ {
		_ = ops[(i*7)%len(ops)]()
		assert.False(t, f.stock(t).IsNegative(), "iteración %d", i)
	}
}

func TestReconcile(t *testing.T) {
	f := newFixture(t, "0")
	ctx := context.Background()

	_, err := f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("10"), Type: entity.MovementTypeInbound, Reason: "compra"})
	require.NoError(t, err)
	_, err = f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("-3"), Reason: "conteo"})
	require.NoError(t, err)

	rec, err := f.uc.Reconcile(ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent())
	assert.True(t, rec.LedgerSum.Equal(d("7")))

	other := f.store.PutProduct(entity.Product{SKU: "X", Name: "Cargado a mano", CurrentStock: d("4")})
	rec, err = f.uc.Reconcile(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, rec.Consistent())
	assert.True(t, rec.Difference.Equal(d("4")))

	_, err = f.uc.Reconcile(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestConsultas(t *testing.T) {
	f := newFixture(t, "6")
	ctx := context.Background()
	_, err := f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("2"), Reason: "vencido"})
	require.NoError(t, err)

	movs, err := f.uc.ListMovements(ctx, f.product.ID, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	losses, err := f.uc.ListLosses(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, losses, 1)

	suggestions, err := f.uc.RestockSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, suggestions, 1, "stock 4 <= mínimo 5")
	assert.Equal(t, f.product.ID, suggestions[0].ID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, inventory.DefaultListLimit, inventory.ClampLimit(0))
	assert.Equal(t, inventory.DefaultListLimit, inventory.ClampLimit(-4))
	assert.Equal(t, 1, inventory.ClampLimit(1))
	assert.Equal(t, inventory.MaxListLimit, inventory.ClampLimit(1000))
}

func TestOperaciones_RechazanMasDeTresDecimales(t *testing.T) {
	f := newFixture(t, "20")
	ctx := context.Background()

	_, err := f.uc.Adjust(ctx, inventory.AdjustInput{ProductID: f.product.ID, Delta: d("0.0004"), Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ReportLoss(ctx, inventory.LossInput{ProductID: f.product.ID, Quantity: d("1.0005"), Reason: "vencido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("0.0004"), Type: entity.MovementTypeInbound, Reason: "compra"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.stock(t).Equal(d("20")))
	assert.Empty(t, f.store.Movements())

	res, err := f.uc.Move(ctx, inventory.MoveInput{ProductID: f.product.ID, Quantity: d("0.125"), Type: entity.MovementTypeInbound, Reason: "compra"})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("20.125")), "tres decimales caben en la escala de stock")
}

func TestOperaciones_UnidadDeConteoExigeEnteros(t *testing.T) {
	s := memory.New()
	approvals := approval.NewService(s, s.Repos(), "secreto", memory.NewAttemptLimiter(), metrics.Nop())
	uc := inventory.NewStockUseCase(s, s.Repos(), approvals, metrics.Nop())
	p := s.PutProduct(entity.Product{SKU: "LEC-1", Name: "Leche 1L", UnitType: "unidad", Price: d("4"), CurrentStock: d("10")})
	ctx := context.Background()

	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: p.ID, Delta: d("-1.5"), Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)
	_, err = uc.ReportLoss(ctx, inventory.LossInput{ProductID: p.ID, Quantity: d("0.5"), Reason: "rota"})
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)
	_, err = uc.Move(ctx, inventory.MoveInput{ProductID: p.ID, Quantity: d("2.25"), Type: entity.MovementTypeOutbound, Reason: "traslado"})
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)

	after, _ := s.Product(p.ID)
	assert.True(t, after.CurrentStock.Equal(d("10")))
	assert.Empty(t, s.Movements())
	assert.Empty(t, s.Losses())

	res, err := uc.Move(ctx, inventory.MoveInput{ProductID: p.ID, Quantity: d("2"), Type: entity.MovementTypeOutbound, Reason: "traslado"})
	require.NoError(t, err)
	assert.True(t, res.CurrentStock.Equal(d("8")))
}
