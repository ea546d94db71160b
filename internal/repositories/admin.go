package repositories

import (
	"context"
	"log/slog"

	"eventsMap/internal/models/domain"
)

// ResetEvents удаляет все события и сбрасывает счётчик id. Только для демо и тестовых данных.
func (r *Repository) ResetEvents(ctx context.Context) error {
	op := "repository.ResetEvents()"
	log := r.logger.With(slog.String("op", op))

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	defer tx.Rollback()

	if r.isSQLite() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
			return &domain.StorageError{Op: op, Err: err}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'events'`); err != nil {
			return &domain.StorageError{Op: op, Err: err}
		}
	} else {
		if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE events RESTART IDENTITY`); err != nil {
			return &domain.StorageError{Op: op, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}

	log.Info("events table reset")
	return nil
}

// SeedEvents вставляет события одной транзакцией: либо все, либо ни одного.
func (r *Repository) SeedEvents(ctx context.Context, events []domain.Event) (int, error) {
	op := "repository.SeedEvents()"
	log := r.logger.With(slog.String("op", op))

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, &domain.StorageError{Op: op, Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, insertEvent)
	if err != nil {
		return 0, &domain.StorageError{Op: op, Err: err}
	}
	defer stmt.Close()

	for _, event := range events {
		if _, err := stmt.ExecContext(ctx, mapToRepo(event)); err != nil {
			return 0, &domain.StorageError{Op: op, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &domain.StorageError{Op: op, Err: err}
	}

	log.Info("events seeded", slog.Int("count", len(events)))
	return len(events), nil
}
