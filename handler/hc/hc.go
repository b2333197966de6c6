package hc

import (
	"net/http"
	"time"

	"fairprice/core"
	"fairprice/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request, settings reports the oracle mode
func Handle(ver string, settings func() core.Settings) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, settings))
	return r
}

func handle(version string, settings func() core.Settings) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"mode":    settings().Mode,
		})
	}
}
