package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/inventory"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

// Ledger escribe el stock y su movimiento en la misma transacción (lectura-verificación-escritura-registro).
// El producto recibido debe venir de GetForUpdate dentro de la transacción de r.
type Ledger struct{}

// DeductSale descuenta stock por venta; ErrInsufficientStock si no alcanza.
func (Ledger) DeductSale(ctx context.Context, r repository.Repos, p *entity.Product, qty decimal.Decimal, by string) (*entity.StockMovement, error) {
	next, err := inventory.Deduct(p.CurrentStock, qty)
	if err != nil {
		return nil, err
	}
	return write(ctx, r, p, next, entity.MovementTypeSale, qty.Neg(), "Venta POS", by)
}

// RecordLoss descuenta stock por merma y guarda el registro de merma.
func (Ledger) RecordLoss(ctx context.Context, r repository.Repos, p *entity.Product, qty decimal.Decimal, reason, by string) (*entity.StockMovement, error) {
	next, err := inventory.Deduct(p.CurrentStock, qty)
	if err != nil {
		return nil, err
	}
	m, err := write(ctx, r, p, next, entity.MovementTypeLoss, qty.Neg(), reason, by)
	if err != nil {
		return nil, err
	}
	if err := r.Losses.Create(ctx, &entity.StockLoss{ProductID: p.ID, Quantity: qty, Reason: reason, ReportedBy: by}); err != nil {
		return nil, err
	}
	return m, nil
}

// Adjust aplica un delta con signo; el resultado no puede ser negativo.
func (Ledger) Adjust(ctx context.Context, r repository.Repos, p *entity.Product, delta decimal.Decimal, reason, by string) (*entity.StockMovement, error) {
	next, err := inventory.ApplyDelta(p.CurrentStock, delta)
	if err != nil {
		return nil, err
	}
	return write(ctx, r, p, next, entity.MovementTypeAdjustment, delta, reason, by)
}

// Move registra una entrada (inbound, +qty) o salida (outbound, -qty).
func (Ledger) Move(ctx context.Context, r repository.Repos, p *entity.Product, qty decimal.Decimal, moveType, reason, by string) (*entity.StockMovement, error) {
	delta := qty
	if moveType == entity.MovementTypeOutbound {
		delta = qty.Neg()
	}
	next, err := inventory.ApplyDelta(p.CurrentStock, delta)
	if err != nil {
		return nil, err
	}
	return write(ctx, r, p, next, moveType, delta, reason, by)
}

func write(ctx context.Context, r repository.Repos, p *entity.Product, next decimal.Decimal, movementType string, delta decimal.Decimal, reason, by string) (*entity.StockMovement, error) {
	if err := r.Products.UpdateStock(ctx, p.ID, next); err != nil {
		return nil, err
	}
	p.CurrentStock = next
	m := &entity.StockMovement{
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        movementType,
		Delta:       delta,
		Reason:      reason,
		PerformedBy: by,
	}
	if err := r.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
