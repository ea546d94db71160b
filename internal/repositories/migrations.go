package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventsMap/internal/models/domain"
	"eventsMap/internal/models/repositories"

	"github.com/jmoiron/sqlx"
)

// dialect — различия DDL между postgres и sqlite.
type dialect struct {
	sqlite bool
}

func (d dialect) idColumn() string {
	if d.sqlite {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "BIGSERIAL PRIMARY KEY"
}

func (d dialect) realType() string {
	if d.sqlite {
		return "REAL"
	}
	return "DOUBLE PRECISION"
}

type migration struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sqlx.Tx, d dialect) error
}

// migrations применяются по порядку, каждая ровно один раз.
// Только добавление: существующие данные не трогаем.
var migrations = []migration{
	{
		version: 1,
		name:    "create_events_table",
		up: func(ctx context.Context, tx *sqlx.Tx, d dialect) error {
			_, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
				id %s,
				name TEXT NOT NULL,
				cep TEXT,
				endereco TEXT,
				numero TEXT,
				bairro TEXT,
				cidade TEXT,
				lat %s,
				lng %s
			)`, d.idColumn(), d.realType(), d.realType()))
			return err
		},
	},
	{
		version: 2,
		name:    "add_image_url",
		up: func(ctx context.Context, tx *sqlx.Tx, d dialect) error {
			return addColumn(ctx, tx, d, "events", "image_url", "TEXT")
		},
	},
	{
		version: 3,
		name:    "add_description_and_dates",
		up: func(ctx context.Context, tx *sqlx.Tx, d dialect) error {
			if err := addColumn(ctx, tx, d, "events", "description", "TEXT NOT NULL DEFAULT ''"); err != nil {
				return err
			}
			if err := addColumn(ctx, tx, d, "events", "initial_date", "TEXT"); err != nil {
				return err
			}
			return addColumn(ctx, tx, d, "events", "final_date", "TEXT")
		},
	},
}

// Migrate создаёт таблицу версий и применяет недостающие миграции.
// Безопасно вызывать при каждом старте.
func (r *Repository) Migrate(ctx context.Context) error {
	op := "repository.Migrate()"
	log := r.logger.With(slog.String("op", op))

	_, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}

	d := dialect{sqlite: r.isSQLite()}

	for _, m := range migrations {
		applied, err := r.applyMigration(ctx, d, m)
		if err != nil {
			return &domain.StorageError{Op: op, Err: fmt.Errorf("migration %d %s: %w", m.version, m.name, err)}
		}
		if applied {
			log.Info("migration applied", slog.Int("version", m.version), slog.String("name", m.name))
		}
	}

	return nil
}

func (r *Repository) applyMigration(ctx context.Context, d dialect, m migration) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`), m.version); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := m.up(ctx, tx, d); err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`),
		m.version, m.name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// AppliedMigrations возвращает записанные миграции по возрастанию версии.
func (r *Repository) AppliedMigrations(ctx context.Context) ([]repositories.Migration, error) {
	var applied []repositories.Migration
	err := r.DB.SelectContext(ctx, &applied, `SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("error in AppliedMigrations(): %w", err)
	}
	return applied, nil
}

// addColumn добавляет колонку, если её ещё нет. Базы, созданные до появления
// schema_migrations, уже могут содержать часть колонок.
func addColumn(ctx context.Context, tx *sqlx.Tx, d dialect, table, column, definition string) error {
	exists, err := columnExists(ctx, tx, d, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition))
	return err
}

func columnExists(ctx context.Context, tx *sqlx.Tx, d dialect, table, column string) (bool, error) {
	var query string
	var args []any

	if d.sqlite {
		query = fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table)
		args = []any{column}
	} else {
		query = `SELECT COUNT(*) FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`
		args = []any{table, column}
	}

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(query), args...); err != nil {
		return false, err
	}
	return count > 0, nil
}
