package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opencourier/client-provider/api/controllers"
	"github.com/opencourier/client-provider/api/middleware"
	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/internal/counterparty"
	"github.com/opencourier/client-provider/internal/tf"
	"github.com/opencourier/client-provider/pkg/config"
	"github.com/opencourier/client-provider/pkg/db"
	"github.com/opencourier/client-provider/pkg/logger"
	"github.com/opencourier/client-provider/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP redis.Pinger,
	clientService clients.Service,
	counterpartyService counterparty.Service,
	tfService tf.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cacheP))
	})

	r.Get("/clients", controllers.ClientList(clientService, logg))
	r.Get("/rundeck/clients", controllers.RundeckClientList(clientService, logg))
	r.Post("/client_lang", controllers.ClientLangList(clientService, logg))

	r.Post("/deliveries", controllers.Deliveries(clientService, logg))
	r.Post("/v2/deliveries", controllers.DeliveriesV2(clientService, logg))

	r.Get("/get_client_data/{clientID:[0-9]+}", controllers.ClientData(clientService, logg))
	r.Get("/client_counterparty/{clientCode}", controllers.ClientCounterparty(counterpartyService, logg))

	syncHandler := controllers.SyncCustomerTF(tfService, logg)
	r.Get("/sync_customer_tf", syncHandler)
	r.Put("/sync_customer_tf", syncHandler)
	r.Delete("/sync_customer_tf", syncHandler)

	return r
}
