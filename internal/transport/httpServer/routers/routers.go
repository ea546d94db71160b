package routers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventsMap/internal/transport/httpServer/handlers"
	myMiddleware "eventsMap/internal/transport/httpServer/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Uploads — откуда и под каким префиксом раздаются загруженные изображения.
type Uploads struct {
	Dir    string
	Prefix string
}

type Router struct {
	log           *slog.Logger
	eventHandler  *handlers.EventHandler
	lookupHandler *handlers.LookupHandler
	uploads       Uploads
	maxBodyBytes  int64
}

func NewRouter(log *slog.Logger, eventHandler *handlers.EventHandler, lookupHandler *handlers.LookupHandler, uploads Uploads, maxBodyBytes int64) *Router {
	return &Router{
		log:           log,
		eventHandler:  eventHandler,
		lookupHandler: lookupHandler,
		uploads:       uploads,
		maxBodyBytes:  maxBodyBytes,
	}
}

func (r *Router) Mount(mux *chi.Mux) {

	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(myMiddleware.Logger(r.log))
	mux.Use(myMiddleware.Metrics)
	mux.Use(middleware.Heartbeat("/ping"))

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/events", func(mux chi.Router) {
		mux.Get("/", r.eventHandler.GetEvents)
		mux.With(middleware.RequestSize(r.maxBodyBytes)).Post("/", r.eventHandler.CreateEvent)
		mux.Get("/{id}", r.eventHandler.GetEvent)
	})

	mux.Route("/lookup", func(mux chi.Router) {
		mux.Get("/cep/{cep}", r.lookupHandler.LookupCEP)
		mux.Get("/geocode", r.lookupHandler.Geocode)
	})

	prefix := "/" + strings.Trim(r.uploads.Prefix, "/")
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(r.uploads.Dir)))
	mux.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		// листинг директории не отдаём
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fs.ServeHTTP(w, req)
	})
}
