package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// Get devuelve una venta registrada.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sales: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

// Receipt genera el recibo PDF de la venta.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrSaleNotFound     si la venta no existe.
func (uc *UseCase) Receipt(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("sales: generador de recibos no configurado")
	}
	sale, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.renderer.RenderSaleReceipt(ctx, sale)
	if err != nil {
		return nil, "", fmt.Errorf("sales: generación de recibo fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", sale.ID), nil
}
