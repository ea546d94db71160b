package httpServer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"eventsMap/internal/config"
	"eventsMap/internal/transport/httpServer/routers"

	"github.com/go-chi/chi/v5"
)

type HttpServer struct {
	logger *slog.Logger
	server *http.Server
}

func NewHttpServer(logger *slog.Logger, router *routers.Router, cfg config.HttpServerConfig) *HttpServer {
	mux := chi.NewRouter()
	router.Mount(mux)

	return &HttpServer{
		logger: logger,
		server: &http.Server{
			Addr:         net.JoinHostPort(cfg.Address, cfg.Port),
			Handler:      mux,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Listen открывает сокет по адресу из конфига и блокируется до остановки сервера.
// После Shutdown возвращает nil, иначе ошибку запуска или приёма соединений.
func (s *HttpServer) Listen() error {
	op := "httpServer.HttpServer.Listen()"

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.Serve(ln)
}

// Serve принимает соединения на уже открытом ln.
func (s *HttpServer) Serve(ln net.Listener) error {
	op := "httpServer.HttpServer.Serve()"
	log := s.logger.With(slog.String("op", op))

	log.Info("http server started", slog.String("addr", ln.Addr().String()))

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	op := "httpServer.HttpServer.Shutdown()"

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
