package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsMap/internal/models/domain"
	"eventsMap/internal/models/repositories"
	"eventsMap/internal/validator"
)

const selectEvents = `SELECT id, name, description, initial_date, final_date, cep, endereco, numero, bairro, cidade, image_url, lat, lng
	FROM events`

const insertEvent = `INSERT INTO events (
		name, description, initial_date, final_date, cep, endereco, numero, bairro, cidade, image_url, lat, lng
	) VALUES (
		:name, :description, :initial_date, :final_date, :cep, :endereco, :numero, :bairro, :cidade, :image_url, :lat, :lng
	)`

// CreateEvent вставляет событие одной строкой и возвращает присвоенный id.
func (r *Repository) CreateEvent(ctx context.Context, event domain.Event) (int64, error) {
	op := "repository.CreateEvent()"

	query, args, err := r.DB.BindNamed(insertEvent+` RETURNING id`, mapToRepo(event))
	if err != nil {
		return 0, &domain.StorageError{Op: op, Err: err}
	}

	var id int64
	if err := r.DB.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, &domain.StorageError{Op: op, Err: err}
	}

	return id, nil
}

func (r *Repository) FindEventByID(ctx context.Context, id int64) (domain.Event, error) {
	op := "repository.FindEventByID()"

	var repoEvent repositories.Event
	err := r.DB.GetContext(ctx, &repoEvent, r.DB.Rebind(selectEvents+` WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("%s: id %d: %w", op, id, domain.ErrNotFound)
		}
		return domain.Event{}, &domain.StorageError{Op: op, Err: err}
	}

	return mapToDomain(repoEvent), nil
}

// ListEvents возвращает все события в порядке вставки.
func (r *Repository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	op := "repository.ListEvents()"

	var repoEvents []repositories.Event
	if err := r.DB.SelectContext(ctx, &repoEvents, selectEvents+` ORDER BY id ASC`); err != nil {
		return nil, &domain.StorageError{Op: op, Err: err}
	}

	result := make([]domain.Event, len(repoEvents))
	for i, e := range repoEvents {
		result[i] = mapToDomain(e)
	}

	return result, nil
}

func mapToRepo(e domain.Event) repositories.Event {
	repoEvent := repositories.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CEP:         nullString(e.Address.CEP),
		Endereco:    nullString(e.Address.Street),
		Numero:      nullString(e.Address.Number),
		Bairro:      nullString(e.Address.Neighborhood),
		Cidade:      nullString(e.Address.City),
		ImageURL:    nullString(e.ImageURL),
	}
	if !e.InitialDate.IsZero() {
		repoEvent.InitialDate = nullString(validator.FormatInstant(e.InitialDate))
	}
	if !e.FinalDate.IsZero() {
		repoEvent.FinalDate = nullString(validator.FormatInstant(e.FinalDate))
	}
	if e.Location != nil {
		repoEvent.Lat = sql.NullFloat64{Float64: e.Location.Lat, Valid: true}
		repoEvent.Lng = sql.NullFloat64{Float64: e.Location.Lng, Valid: true}
	}
	return repoEvent
}

func mapToDomain(e repositories.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Address: domain.Address{
			CEP:          e.CEP.String,
			Street:       e.Endereco.String,
			Number:       e.Numero.String,
			Neighborhood: e.Bairro.String,
			City:         e.Cidade.String,
		},
		ImageURL: e.ImageURL.String,
	}
	// даты пишутся только в канонической форме; всё остальное считаем отсутствующим
	if t, ok := validator.ParseInstant(e.InitialDate.String); ok {
		event.InitialDate = t
	}
	if t, ok := validator.ParseInstant(e.FinalDate.String); ok {
		event.FinalDate = t
	}
	if e.Lat.Valid && e.Lng.Valid {
		event.Location = &domain.Location{Lat: e.Lat.Float64, Lng: e.Lng.Float64}
	}
	return event
}

// nullString хранит пустую строку как NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
