package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelmoret/comissoes-backend/api/controllers"
	"github.com/rafaelmoret/comissoes-backend/api/middleware"
	installmentsvc "github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/internal/pricing"
	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	"github.com/rafaelmoret/comissoes-backend/pkg/config"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	catalog *pricing.Catalog,
	installmentsService installmentsvc.Service,
	reconciliationService reconciliation.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/healthz", controllers.HealthReady(cfg, logg, dbP, redisP))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/checkout/quote", controllers.CheckoutQuote(catalog, logg))
		r.Post("/reconciliation/run", controllers.ReconciliationRun(reconciliationService, logg))
		r.Get("/sellers/{sellerID}/installments", controllers.SellerInstallments(installmentsService, logg))
		r.Post("/installments/{installmentID}/pay", controllers.PayInstallment(installmentsService, logg))
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/faturamento", controllers.InvoiceWebhook(reconciliationService, logg))
		})
	})

	return r
}
