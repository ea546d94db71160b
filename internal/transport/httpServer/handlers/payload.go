package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"eventsMap/internal/models/domain"
	"eventsMap/internal/transport/httpServer/handlers/dto"
)

const multipartMemory = 1 << 20

var (
	// errBadRequest — тело запроса нельзя разобрать.
	errBadRequest = errors.New("malformed request body")
	// errBodyTooLarge — тело длиннее лимита RequestSize.
	errBodyTooLarge = errors.New("request body too large")
)

// decodeCreateRequest разбирает POST /events в черновик события и, для
// multipart, заголовок файла изображения. Тип тела определяется по Content-Type.
func decodeCreateRequest(r *http.Request) (domain.EventDraft, *multipart.FileHeader, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return domain.EventDraft{}, nil, fmt.Errorf("%w: unsupported content type", errBadRequest)
	}

	switch mediaType {
	case "application/json":
		draft, err := decodeJSON(r)
		return draft, nil, err
	case "multipart/form-data":
		return decodeMultipart(r)
	default:
		return domain.EventDraft{}, nil, fmt.Errorf("%w: unsupported content type %s", errBadRequest, mediaType)
	}
}

func decodeJSON(r *http.Request) (domain.EventDraft, error) {
	var req dto.CreateEventRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return domain.EventDraft{}, bodyError(err)
	}
	// после объекта допускаются только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return domain.EventDraft{}, fmt.Errorf("%w: trailing data after json object", errBadRequest)
		}
		return domain.EventDraft{}, bodyError(err)
	}
	return req.ToDraft(), nil
}

// bodyError отличает превышение лимита тела от прочих ошибок разбора.
func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

func decodeMultipart(r *http.Request) (domain.EventDraft, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return domain.EventDraft{}, nil, bodyError(err)
	}

	form := r.MultipartForm
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	lat, err := parseCoordinate(value("lat"))
	if err != nil {
		return domain.EventDraft{}, nil, domain.NewValidationError("lat", "lat must be a number")
	}
	lng, err := parseCoordinate(value("lng"))
	if err != nil {
		return domain.EventDraft{}, nil, domain.NewValidationError("lng", "lng must be a number")
	}

	draft := domain.EventDraft{
		Name:        value("name"),
		Description: value("description"),
		InitialDate: value("initial_date"),
		FinalDate:   value("final_date"),
		Address: domain.Address{
			CEP:          value("cep"),
			Street:       value("endereco"),
			Number:       value("numero"),
			Neighborhood: value("bairro"),
			City:         value("cidade"),
		},
		Lat: lat,
		Lng: lng,
	}

	var image *multipart.FileHeader
	if files := form.File["image"]; len(files) > 0 {
		image = files[0]
	}

	return draft, image, nil
}

// parseCoordinate: пустая строка — координата не передана.
func parseCoordinate(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
