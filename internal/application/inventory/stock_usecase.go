package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/audit"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/inventory"
	"github.com/jhoicas/greenstore-api/internal/domain/policy"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

// Límites de listados.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// StockUseCase operaciones de stock (ajuste, merma, movimiento) con su compuerta de aprobación.
// Cada operación corre en una sola transacción con la fila del producto bloqueada.
type StockUseCase struct {
	tx        repository.TxRunner
	repos     repository.Repos
	approvals *approval.Service
	ledger    Ledger
	metrics   *metrics.Recorder
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx repository.TxRunner, repos repository.Repos, approvals *approval.Service, rec *metrics.Recorder) *StockUseCase {
	return &StockUseCase{tx: tx, repos: repos, approvals: approvals, metrics: rec}
}

// AdjustInput ajuste manual con delta con signo.
type AdjustInput struct {
	ProductID     string
	Delta         decimal.Decimal
	Reason        string
	UserID        string
	ApprovalToken string
}

// LossInput reporte de merma.
type LossInput struct {
	ProductID     string
	Quantity      decimal.Decimal
	Reason        string
	UserID        string
	ApprovalToken string
}

// MoveInput entrada o salida manual.
type MoveInput struct {
	ProductID string
	Quantity  decimal.Decimal
	Type      string // inbound | outbound
	Reason    string
	UserID    string
}

// Result movimiento registrado y stock resultante.
type Result struct {
	MovementID   string
	CurrentStock decimal.Decimal
	ApprovedBy   *string
}

// Adjust aplica un ajuste. Si |delta| * precio supera max_stock_adjust exige aprobación stock_adjust.
func (uc *StockUseCase) Adjust(ctx context.Context, in AdjustInput) (*Result, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == "" || reason == "" || in.Delta.IsZero() || !inventory.ValidQuantityScale(in.Delta) {
		return nil, domain.ErrInvalidInput
	}
	var res *Result
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		pol, p, err := loadForUpdate(ctx, r, in.ProductID)
		if err != nil {
			return err
		}
		if err := inventory.CheckUnit(p.UnitType, in.Delta); err != nil {
			return err
		}
		approvedBy, err := uc.approvals.Require(ctx, r, pol.AdjustNeedsApproval(in.Delta, p.Price), in.ApprovalToken, entity.ActionStockAdjust)
		if err != nil {
			return err
		}
		m, err := uc.ledger.Adjust(ctx, r, p, in.Delta, reason, in.UserID)
		if err != nil {
			return err
		}
		if err := audit.Record(ctx, r.Audit, entity.ActionStockAdjust, audit.Details{
			"product_id": p.ID, "delta": in.Delta, "reason": reason, "current_stock": p.CurrentStock,
		}, in.UserID, approvedBy); err != nil {
			return err
		}
		res = &Result{MovementID: m.ID, CurrentStock: p.CurrentStock, ApprovedBy: approvedBy}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovement(entity.MovementTypeAdjustment)
	return res, nil
}

// ReportLoss registra una merma. Si cantidad * precio supera max_losses exige aprobación stock_loss.
func (uc *StockUseCase) ReportLoss(ctx context.Context, in LossInput) (*Result, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == "" || reason == "" || !in.Quantity.IsPositive() || !inventory.ValidQuantityScale(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	var res *Result
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		pol, p, err := loadForUpdate(ctx, r, in.ProductID)
		if err != nil {
			return err
		}
		if err := inventory.CheckUnit(p.UnitType, in.Quantity); err != nil {
			return err
		}
		approvedBy, err := uc.approvals.Require(ctx, r, pol.LossNeedsApproval(in.Quantity, p.Price), in.ApprovalToken, entity.ActionStockLoss)
		if err != nil {
			return err
		}
		m, err := uc.ledger.RecordLoss(ctx, r, p, in.Quantity, reason, in.UserID)
		if err != nil {
			return err
		}
		if err := audit.Record(ctx, r.Audit, entity.ActionStockLoss, audit.Details{
			"product_id": p.ID, "quantity": in.Quantity, "reason": reason, "current_stock": p.CurrentStock,
		}, in.UserID, approvedBy); err != nil {
			return err
		}
		res = &Result{MovementID: m.ID, CurrentStock: p.CurrentStock, ApprovedBy: approvedBy}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovement(entity.MovementTypeLoss)
	return res, nil
}

// Move registra una entrada o salida manual (sin compuerta de aprobación).
func (uc *StockUseCase) Move(ctx context.Context, in MoveInput) (*Result, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == "" || reason == "" || !in.Quantity.IsPositive() || !inventory.ValidQuantityScale(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidMoveType(in.Type) {
		return nil, domain.NewBusinessError(domain.KindInvalid, "tipo de movimiento inválido: %s", in.Type)
	}
	var res *Result
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if err := inventory.CheckUnit(p.UnitType, in.Quantity); err != nil {
			return err
		}
		m, err := uc.ledger.Move(ctx, r, p, in.Quantity, in.Type, reason, in.UserID)
		if err != nil {
			return err
		}
		if err := audit.Record(ctx, r.Audit, entity.AuditStockMove, audit.Details{
			"product_id": p.ID, "quantity": in.Quantity, "type": in.Type, "reason": reason,
		}, in.UserID, nil); err != nil {
			return err
		}
		res = &Result{MovementID: m.ID, CurrentStock: p.CurrentStock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovement(in.Type)
	return res, nil
}

// ListMovements movimientos recientes, opcionalmente de un producto.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	return uc.repos.Movements.List(ctx, repository.MovementFilter{ProductID: productID, Limit: ClampLimit(limit)})
}

// ListLosses mermas recientes.
func (uc *StockUseCase) ListLosses(ctx context.Context, limit int) ([]*entity.StockLoss, error) {
	return uc.repos.Losses.List(ctx, ClampLimit(limit))
}

// RestockSuggestions productos en o por debajo de su stock mínimo.
func (uc *StockUseCase) RestockSuggestions(ctx context.Context) ([]*entity.Product, error) {
	return uc.repos.Products.ListBelowMin(ctx)
}

// Reconciliation compara el stock cacheado contra la suma del ledger.
type Reconciliation struct {
	ProductID    string
	CurrentStock decimal.Decimal
	LedgerSum    decimal.Decimal
	Difference   decimal.Decimal // CurrentStock - LedgerSum
}

// Consistent indica si el caché coincide con el ledger.
func (r Reconciliation) Consistent() bool {
	return r.Difference.IsZero()
}

// Reconcile lee producto y ledger en la misma transacción para obtener una foto consistente.
func (uc *StockUseCase) Reconcile(ctx context.Context, productID string) (*Reconciliation, error) {
	var rec *Reconciliation
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		sum, err := r.Movements.SumDelta(ctx, productID)
		if err != nil {
			return err
		}
		rec = &Reconciliation{
			ProductID:    p.ID,
			CurrentStock: p.CurrentStock,
			LedgerSum:    sum,
			Difference:   p.CurrentStock.Sub(sum),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ClampLimit aplica el límite por defecto y lo acota a [1, MaxListLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

// loadForUpdate carga la política una vez y bloquea el producto.
func loadForUpdate(ctx context.Context, r repository.Repos, productID string) (policy.Policy, *entity.Product, error) {
	settings, err := r.Settings.GetMany(ctx, entity.PolicyKeys)
	if err != nil {
		return policy.Policy{}, nil, fmt.Errorf("load settings: %w", err)
	}
	p, err := r.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return policy.Policy{}, nil, err
	}
	if p == nil {
		return policy.Policy{}, nil, domain.ErrProductNotFound
	}
	return policy.FromSettings(settings), p, nil
}
