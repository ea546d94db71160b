package handlers

import (
	"context"
	"mime/multipart"

	"eventsMap/internal/models/domain"
)

// EventRepository — интерфейс для работы с событиями из хэндлеров.
type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) (int64, error)
	FindEventByID(ctx context.Context, id int64) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// ImageStore — приём загруженных изображений.
type ImageStore interface {
	Validate(fh *multipart.FileHeader) (string, error)
	Save(fh *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)
}

type AddressLookup interface {
	LookupCEP(ctx context.Context, cep string) (domain.PostalAddress, error)
}
