package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventsMap/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Repository владеет подключением к БД и схемой таблицы events.
type Repository struct {
	logger *slog.Logger
	DB     *sqlx.DB
}

// Open подключается к БД из конфига, проверяет соединение и применяет миграции.
func Open(ctx context.Context, logger *slog.Logger, cfg config.DBConfig) (*Repository, error) {
	op := "repository.Open()"
	log := logger.With(slog.String("op", op), slog.String("driver", cfg.Driver))

	driver := cfg.Driver
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("%s: unsupported db driver %q", op, driver)
	}

	db, err := sqlx.Open(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if driver == "sqlite" {
		// один писатель: sqlite не любит параллельные транзакции на запись
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	r := New(logger, db)
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("database connection established")

	return r, nil
}

// New оборачивает уже открытое подключение. Миграции не запускает.
func New(logger *slog.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		logger: logger,
		DB:     db,
	}
}

// Shutdown закрывает пул соединений.
func (r *Repository) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit repository: %w", ctx.Err())
	default:
		return r.DB.Close()
	}
}

func (r *Repository) isSQLite() bool {
	return r.DB.DriverName() == "sqlite"
}
