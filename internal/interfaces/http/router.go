package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/auth"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/supply"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
)

// Roles con permiso de gestión (aprobar, comprar, exportar).
var managers = []string{"admin", "manager"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	CategoryUC     *usecase.CategoryUseCase
	ItemUC         *inventory.ItemUseCase
	PurchaseUC     *inventory.PurchaseUseCase
	Inbound        *inventory.InboundLedger
	Outbound       *inventory.OutboundLedger
	RequestUC      *supply.RequestUseCase
	ReturnUC       *supply.ReturnUseCase
	ReceiptUC      *supply.ReceiptUseCase
	ExportUC       *supply.ExportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	manage := RequireRole(managers...)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	catalog := NewCatalogHandler(deps.OrganizationUC, deps.CategoryUC, deps.AuthUC)
	// Alta de panel de gestión con su primer admin (público, igual que el registro)
	api.Post("/organizations", catalog.CreateOrganization)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/organizations/me", catalog.GetOrganization)
	protected.Post("/users", RequireRole("admin"), authHandler.CreateMember)
	protected.Get("/categories", catalog.ListCategories)
	protected.Post("/categories", manage, catalog.CreateCategory)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/ranking", itemHandler.Ranking)
	items.Get("/:id", itemHandler.Get)
	items.Get("/:id/instances", itemHandler.Instances)
	items.Post("/", manage, itemHandler.Create)
	items.Put("/:id", manage, itemHandler.Update)
	items.Delete("/:id", manage, itemHandler.Deactivate)

	// Purchases
	purchases := protected.Group("/purchases", manage)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Register)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Libros de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inbound, deps.Outbound)
	invGroup.Get("/out/me", inventoryHandler.ListMyOutbound)
	invGroup.Get("/in", manage, inventoryHandler.ListInbound)
	invGroup.Post("/in", manage, inventoryHandler.RecordInbound)
	invGroup.Get("/out", manage, inventoryHandler.ListOutbound)

	// Supply requests
	requests := protected.Group("/supply-requests")
	requestHandler := NewSupplyRequestHandler(deps.RequestUC, deps.ReceiptUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/me", requestHandler.ListMine)
	requests.Get("/lent", requestHandler.Lent)
	requests.Get("/summary", manage, requestHandler.CountByStatus)
	requests.Get("/", manage, requestHandler.List)
	requests.Get("/:id", requestHandler.Get)
	requests.Get("/:id/chase", requestHandler.Chase)
	requests.Get("/:id/receipt", requestHandler.Receipt)
	requests.Put("/:id", requestHandler.UpdateMine)
	requests.Delete("/:id", requestHandler.Delete)
	requests.Patch("/:id/status", manage, requestHandler.UpdateStatus)

	// Supply returns
	returns := protected.Group("/supply-returns")
	returnHandler := NewSupplyReturnHandler(deps.ReturnUC)
	returns.Post("/", returnHandler.Create)
	returns.Get("/", manage, returnHandler.List)
	returns.Get("/:id", returnHandler.Get)
	returns.Patch("/:id/status", manage, returnHandler.UpdateStatus)

	// Export
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export/:ledger", manage, exportHandler.Export)
}
