package rest

import (
	"net/http"

	"fairprice/core"
	"fairprice/handler/auth"
	"fairprice/handler/render"
	"fairprice/service/admin"
	"fairprice/service/oracle"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(o *oracle.Oracle, adminSrv *admin.Service, events core.EventStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	router.Get("/assets", assetsHandler(o))
	router.Get("/assets/{asset}", assetHandler(o))
	router.Get("/settings", settingsHandler(o))
	router.Get("/events", eventsHandler(events))

	router.Route("/prices/{asset}", func(r chi.Router) {
		r.Get("/", priceHandler(o))
		r.Get("/age", priceAgeHandler(o))
		r.Get("/quote", quoteHandler(o))
		r.Post("/refresh", refreshHandler(o))
		r.Get("/value", valueHandler(o))
		r.Get("/amount", amountHandler(o))
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/feeds", registerFeedHandler(adminSrv))
		r.Post("/vaults", registerVaultHandler(adminSrv))
		r.Post("/manual-prices", setManualPriceHandler(adminSrv))
		r.Delete("/manual-prices/{asset}", disableManualPriceHandler(adminSrv))
		r.Put("/stale-period", stalePeriodHandler(adminSrv.SetStalePeriod))
		r.Put("/fallback-stale-period", stalePeriodHandler(adminSrv.SetFallbackStalePeriod))
		r.Put("/assets/{asset}/rate-bounds", rateBoundsHandler(adminSrv))
		r.Post("/pause", modeHandler(adminSrv.Pause))
		r.Post("/resume", modeHandler(adminSrv.Resume))
	})

	return router
}
