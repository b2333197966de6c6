package handler

import (
	"net/http"
	"time"

	"fairprice/core"
	"fairprice/handler/auth"
	"fairprice/handler/hc"
	"fairprice/handler/render"
	"fairprice/handler/rest"
	"fairprice/internal/metrics"
	"fairprice/service/admin"
	"fairprice/service/oracle"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	cfg     *core.Config
	oracle  *oracle.Oracle
	admin   *admin.Service
	events  core.EventStore
	version string
}

// New new server function
func New(
	cfg *core.Config,
	o *oracle.Oracle,
	adminSrv *admin.Service,
	events core.EventStore,
	version string,
) Server {
	return Server{
		cfg:     cfg,
		oracle:  o,
		admin:   adminSrv,
		events:  events,
		version: version,
	}
}

// Handler root handler with health check, metrics and the rest api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(middleware.RequestID)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.version, s.oracle.Settings))
	mux.Mount("/metrics", promhttp.Handler())
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(observe)
	r.Use(auth.HandleAuthentication(s.cfg))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	r.Mount("/", rest.Handle(s.oracle, s.admin, s.events))
	return r
}

func observe(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := ""
		if c := chi.RouteContext(r.Context()); c != nil {
			route = c.RoutePattern()
		}

		metrics.HTTP().Observe(route, ww.Status(), time.Since(start))
	}

	return http.HandlerFunc(fn)
}
