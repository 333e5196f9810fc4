package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/discounts"
	"github.com/jhoicas/greenstore-api/internal/application/inventory"
	"github.com/jhoicas/greenstore-api/internal/application/pos"
	"github.com/jhoicas/greenstore-api/internal/application/sales"
	"github.com/jhoicas/greenstore-api/internal/application/settings"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sales     *sales.UseCase
	Stock     *inventory.StockUseCase
	Approvals *approval.Service
	POS       *pos.UseCase
	Discounts *discounts.UseCase
	Settings  *settings.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Aprobaciones (público: el gerente se re-autentica con email y contraseña)
	approvalHandler := NewApprovalHandler(deps.Approvals)
	api.Post("/approvals", approvalHandler.Issue)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	salesHandler := NewSalesHandler(deps.Sales)
	protected.Post("/sales", salesHandler.Register)
	protected.Get("/sales/:id/receipt", salesHandler.Receipt)

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Stock)
	stock.Post("/adjust", RequireRole(entity.RoleSupervisor), stockHandler.Adjust)
	stock.Post("/loss", RequireRole(entity.RoleSupervisor), stockHandler.Loss)
	stock.Get("/loss", stockHandler.Losses)
	stock.Post("/move", stockHandler.Move)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/restock-suggestions", stockHandler.RestockSuggestions)
	stock.Get("/:product_id/reconcile", RequireRole(entity.RoleSupervisor), stockHandler.Reconcile)

	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.POS)
	posGroup.Post("/remove-item", posHandler.RemoveItem)
	posGroup.Post("/cancel-sale", posHandler.CancelSale)
	posGroup.Post("/discount-override", posHandler.DiscountOverride)

	discountGroup := protected.Group("/discounts", RequireRole(entity.RoleManager))
	discountHandler := NewDiscountHandler(deps.Discounts)
	discountGroup.Get("/", discountHandler.List)
	discountGroup.Post("/", discountHandler.Create)
	discountGroup.Put("/:id", discountHandler.Update)

	settingsGroup := protected.Group("/settings", RequireRole(entity.RoleAdmin))
	settingsHandler := NewSettingsHandler(deps.Settings)
	settingsGroup.Get("/", settingsHandler.GetAll)
	settingsGroup.Put("/", settingsHandler.Update)
}
