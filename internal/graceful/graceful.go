package graceful

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"eventsMap/internal/utils/logger/sl"
)

// Operation — функция освобождения ресурса при завершении.
type Operation func(ctx context.Context) error

// Phase — операции, которые можно выполнять параллельно.
type Phase map[string]Operation

// GracefulShutdown ждёт SIGINT/SIGTERM/SIGHUP или отмены ctx и выполняет phases
// по порядку: следующая фаза стартует только после завершения предыдущей,
// операции внутри фазы идут параллельно. Таймаут общий на все фазы.
// Возвращённый канал закрывается, когда всё завершено.
func GracefulShutdown(ctx context.Context, timeout time.Duration, log *slog.Logger, phases ...Phase) <-chan struct{} {
	wait := make(chan struct{})

	go func() {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(s)

		select {
		case sig := <-s:
			log.Info("shutting down", slog.String("signal", sig.String()))
		case <-ctx.Done():
			log.Info("shutting down", slog.String("reason", ctx.Err().Error()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		timeoutFunc := time.AfterFunc(timeout, func() {
			log.Error("timeout elapsed, force exit", slog.Duration("timeout", timeout))
			os.Exit(1)
		})
		defer timeoutFunc.Stop()

		for _, phase := range phases {
			runPhase(shutdownCtx, phase, log)
		}

		close(wait)
	}()

	return wait
}

func runPhase(ctx context.Context, phase Phase, log *slog.Logger) {
	var wg sync.WaitGroup
	for key, op := range phase {
		wg.Add(1)
		go func(innerKey string, innerOp Operation) {
			defer wg.Done()

			log.Info("cleaning up", slog.String("resource", innerKey))
			if err := innerOp(ctx); err != nil {
				log.Error("clean up failed", slog.String("resource", innerKey), sl.Err(err))
				return
			}
			log.Info("was shutdown gracefully", slog.String("resource", innerKey))
		}(key, op)
	}
	wg.Wait()
}
