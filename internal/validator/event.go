package validator

import (
	"math"
	"strings"
	"time"

	"eventsMap/internal/models/domain"
)

// InstantLayout — канонический ISO-8601: миллисекунды и суффикс Z.
const InstantLayout = "2006-01-02T15:04:05.000Z"

// ParseInstant принимает только каноническую запись: строка должна
// совпадать с результатом FormatInstant от разобранного времени.
func ParseInstant(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	if FormatInstant(t) != s {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// Validate проверяет черновик события по порядку и возвращает первую ошибку.
// Возвращаемая ошибка всегда *domain.ValidationError.
func Validate(d domain.EventDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.NewValidationError("name", "name is required")
	}

	if strings.TrimSpace(d.Description) == "" {
		return domain.NewValidationError("description", "description is required")
	}

	initial, ok := ParseInstant(d.InitialDate)
	if !ok {
		return domain.NewValidationError("initial_date",
			"initial_date must be an ISO-8601 UTC instant with millisecond precision")
	}

	final, ok := ParseInstant(d.FinalDate)
	if !ok {
		return domain.NewValidationError("final_date",
			"final_date must be an ISO-8601 UTC instant with millisecond precision")
	}

	if final.Before(initial) {
		return domain.NewValidationError("final_date", "final_date cannot be earlier than initial_date")
	}

	if (d.Lat == nil) != (d.Lng == nil) {
		return domain.NewValidationError("location", "lat and lng must be provided together")
	}
	if d.Lat != nil && (!isFinite(*d.Lat) || !isFinite(*d.Lng)) {
		return domain.NewValidationError("location", "lat and lng must be finite numbers")
	}

	return nil
}

// ToEvent собирает доменное событие из черновика, прошедшего Validate.
func ToEvent(d domain.EventDraft) (domain.Event, error) {
	if err := Validate(d); err != nil {
		return domain.Event{}, err
	}

	initial, _ := ParseInstant(d.InitialDate)
	final, _ := ParseInstant(d.FinalDate)

	event := domain.Event{
		Name:        d.Name,
		Description: d.Description,
		InitialDate: initial,
		FinalDate:   final,
		Address:     d.Address,
	}
	if d.Lat != nil {
		event.Location = &domain.Location{Lat: *d.Lat, Lng: *d.Lng}
	}

	return event, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
