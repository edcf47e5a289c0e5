package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mazajretail/shishapos-backend/api/controllers"
	"github.com/mazajretail/shishapos-backend/api/middleware"
	"github.com/mazajretail/shishapos-backend/internal/catalog"
	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/ledger"
	"github.com/mazajretail/shishapos-backend/internal/notifications"
	"github.com/mazajretail/shishapos-backend/internal/partners"
	"github.com/mazajretail/shishapos-backend/internal/reports"
	"github.com/mazajretail/shishapos-backend/internal/sales"
	"github.com/mazajretail/shishapos-backend/pkg/config"
	"github.com/mazajretail/shishapos-backend/pkg/db"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Services bundles everything the router dispatches to.
type Services struct {
	Inventory     inventory.Service
	Catalog       catalog.Service
	Sales         sales.Service
	Ledger        ledger.Service
	Partners      partners.Service
	Notifications notifications.Service
	Reports       reports.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", controllers.ListInventory(svcs.Inventory, logg))
		r.Post("/", controllers.AddInventoryItem(svcs.Inventory, logg))
		r.Get("/low-stock", controllers.LowStock(svcs.Inventory, logg))
		r.Get("/{id}", controllers.GetInventoryItem(svcs.Inventory, logg))
		r.Put("/{id}", controllers.EditInventoryItem(svcs.Inventory, logg))
		r.Delete("/{id}", controllers.DeleteInventoryItem(svcs.Inventory, logg))
		r.Get("/{id}/status", controllers.InventoryItemStatus(svcs.Inventory, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
		r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
		r.Post("/refresh", controllers.RefreshCatalog(svcs.Catalog, logg))
		r.Get("/{id}", controllers.GetProduct(svcs.Catalog, logg))
		r.Put("/{id}", controllers.UpdateProduct(svcs.Catalog, logg))
		r.Delete("/{id}", controllers.DeleteProduct(svcs.Catalog, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.ViewCart(svcs.Sales, logg))
		r.Post("/lines", controllers.AddToCart(svcs.Sales, logg))
		r.Delete("/lines/{id}", controllers.RemoveFromCart(svcs.Sales, logg))
		r.Delete("/", controllers.ClearCart(svcs.Sales, logg))
		r.Post("/checkout", controllers.Checkout(svcs.Sales, logg))
	})

	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Get("/", controllers.SalesJournal(svcs.Sales, logg))
	})

	r.Route("/api/v1/ledger", func(r chi.Router) {
		r.Get("/", controllers.ListLedger(svcs.Ledger, logg))
		r.Post("/", controllers.RecordLedgerEntry(svcs.Ledger, logg))
		r.Get("/outstanding", controllers.OutstandingBalances(svcs.Ledger, logg))
		r.Get("/due-soon", controllers.DueSoon(svcs.Ledger, logg))
		r.Post("/{id}/settle", controllers.SettleLedgerEntry(svcs.Ledger, logg))
	})

	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", controllers.ListCustomers(svcs.Partners, logg))
		r.Post("/", controllers.CreateCustomer(svcs.Partners, logg))
		r.Put("/{id}", controllers.UpdateCustomer(svcs.Partners, logg))
		r.Delete("/{id}", controllers.DeleteCustomer(svcs.Partners, logg))
	})

	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Get("/", controllers.ListSuppliers(svcs.Partners, logg))
		r.Post("/", controllers.CreateSupplier(svcs.Partners, logg))
		r.Put("/{id}", controllers.UpdateSupplier(svcs.Partners, logg))
		r.Delete("/{id}", controllers.DeleteSupplier(svcs.Partners, logg))
	})

	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
		r.Post("/refresh", controllers.RefreshNotifications(svcs.Notifications, logg))
		r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		r.Post("/{id}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/sales", controllers.SalesSummary(svcs.Reports, logg))
		r.Get("/stock-health", controllers.StockHealth(svcs.Reports, logg))
	})

	return r
}
