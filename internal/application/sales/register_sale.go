package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/inventory"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/discount"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	stock "github.com/jhoicas/greenstore-api/internal/domain/inventory"
	"github.com/jhoicas/greenstore-api/internal/domain/policy"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

// UseCase registra ventas y entrega sus recibos.
type UseCase struct {
	tx       repository.TxRunner
	repos    repository.Repos
	ledger   inventory.Ledger
	renderer ReceiptRenderer
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewUseCase construye el caso de uso. renderer puede ser nil si no se exponen recibos.
func NewUseCase(tx repository.TxRunner, repos repository.Repos, renderer ReceiptRenderer, rec *metrics.Recorder) *UseCase {
	return &UseCase{
		tx:       tx,
		repos:    repos,
		renderer: renderer,
		metrics:  rec,
		now:      func() time.Time { return time.Now() },
	}
}

// WithClock reemplaza el reloj usado para evaluar la vigencia de descuentos (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// RegisterInput venta de una línea.
type RegisterInput struct {
	ProductID     string
	Quantity      decimal.Decimal
	PaymentMethod string
	DiscountID    string // opcional
	UserID        string
}

// RegisterSale ejecuta el pipeline de venta en una sola transacción:
// producto (404) -> stock suficiente (400) -> descuento vigente y aplicable (400) ->
// techo max_discount (403) -> descuento de stock -> venta -> movimiento.
// Cualquier rechazo deja stock, ventas y movimientos intactos.
func (uc *UseCase) RegisterSale(ctx context.Context, in RegisterInput) (*entity.Sale, error) {
	payment := strings.TrimSpace(in.PaymentMethod)
	if in.ProductID == "" || payment == "" || !in.Quantity.IsPositive() || !stock.ValidQuantityScale(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if err := stock.CheckUnit(p.UnitType, in.Quantity); err != nil {
			return err
		}
		if p.CurrentStock.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		// Importes a 2 decimales antes de derivar final_total, igual que se persisten.
		total := stock.Money(p.Price.Mul(in.Quantity))
		amount := decimal.Zero
		var discountID *string
		if in.DiscountID != "" {
			d, err := r.Discounts.GetByID(ctx, in.DiscountID)
			if err != nil {
				return err
			}
			if d == nil || !d.IsActiveAt(uc.now()) || !d.AppliesTo(p) {
				return domain.ErrInvalidDiscount
			}
			amount = decimal.Min(stock.Money(discount.Compute(d, in.Quantity, p.Price, total)), total)

			settings, err := r.Settings.GetMany(ctx, []string{entity.SettingMaxDiscount})
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if policy.FromSettings(settings).DiscountAboveCeiling(discount.Percent(amount, total)) {
				return domain.ErrDiscountCeiling
			}
			discountID = &d.ID
		}

		if _, err := uc.ledger.DeductSale(ctx, r, p, in.Quantity, in.UserID); err != nil {
			return err
		}
		sale = &entity.Sale{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       in.Quantity,
			UnitPrice:      p.Price,
			Total:          total,
			DiscountID:     discountID,
			DiscountAmount: amount,
			FinalTotal:     decimal.Max(total.Sub(amount), decimal.Zero),
			PaymentMethod:  payment,
			SoldBy:         in.UserID,
		}
		return r.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.Sale()
	uc.metrics.StockMovement(entity.MovementTypeSale)
	return sale, nil
}
