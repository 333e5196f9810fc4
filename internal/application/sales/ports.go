package sales

import (
	"context"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// ReceiptRenderer genera la representación imprimible (PDF) de una venta.
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
