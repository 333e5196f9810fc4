package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products  ProductRepository
	Movements StockMovementRepository
	Losses    StockLossRepository
	Sales     SaleRepository
	Discounts DiscountRepository
	Approvals ApprovalRepository
	Audit     AuditLogRepository
	Settings  SettingRepository
	Users     UserRepository
}

// TxRunner ejecuta fn en una transacción: Commit si fn devuelve nil, Rollback en cualquier otro caso.
// Los rechazos de negocio y las fallas de infraestructura se propagan sin reintentos.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
