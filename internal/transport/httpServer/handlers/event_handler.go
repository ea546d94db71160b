package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"eventsMap/internal/metrics"
	"eventsMap/internal/models/domain"
	"eventsMap/internal/transport/httpServer/handlers/dto"
	"eventsMap/internal/utils"
	"eventsMap/internal/utils/logger/sl"
	"eventsMap/internal/validator"

	"github.com/go-chi/chi/v5"
)

var (
	errInvalidID     = errors.New("invalid id")
	errEventNotFound = errors.New("event not found")
	errInternal      = errors.New("internal server error")
)

type EventHandler struct {
	repository EventRepository
	images     ImageStore
	geocoder   Geocoder
	log        *slog.Logger
}

func NewEventHandler(log *slog.Logger, repo EventRepository, images ImageStore, geocoder Geocoder) *EventHandler {
	return &EventHandler{
		repository: repo,
		images:     images,
		geocoder:   geocoder,
		log:        log,
	}
}

// CreateEvent обрабатывает POST /events (JSON или multipart/form-data).
// Изображение проверяется до валидации события и пишется на диск только
// после неё, чтобы отклонённый запрос не оставлял файлов.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.CreateEvent()"
	log := h.log.With(slog.String("op", op))

	draft, image, err := decodeCreateRequest(r)
	if err != nil {
		h.respondClientError(log, err, w)
		return
	}

	if image != nil {
		if _, err := h.images.Validate(image); err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
			h.respondClientError(log, err, w)
			return
		}
	}

	event, err := validator.ToEvent(draft)
	if err != nil {
		h.respondClientError(log, err, w)
		return
	}

	ctx := r.Context()

	if event.Location == nil && !event.Address.IsEmpty() {
		event.Location = h.resolveLocation(log, r, event.Address)
	}

	if image != nil {
		ref, err := h.images.Save(image)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			h.respondServerError(log, fmt.Errorf("failed to save image: %w", err), w)
			return
		}
		metrics.ImageUploadsTotal.WithLabelValues("stored").Inc()
		event.ImageURL = ref
	}

	id, err := h.repository.CreateEvent(ctx, event)
	if err != nil {
		if event.ImageURL != "" {
			if rmErr := h.images.Remove(event.ImageURL); rmErr != nil {
				log.Error("failed to remove orphaned image", slog.String("image", event.ImageURL), sl.Err(rmErr))
			}
		}
		h.respondServerError(log, fmt.Errorf("failed to create event: %w", err), w)
		return
	}

	metrics.EventsCreatedTotal.Inc()
	log.Info("event created", slog.Int64("id", id), slog.Bool("image", event.ImageURL != ""))

	if err := utils.Json(w, http.StatusOK, dto.CreateEventResponse{ID: id}); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// resolveLocation геокодирует адрес, когда клиент не прислал координаты.
// Любой сбой не мешает созданию: событие сохраняется без координат.
func (h *EventHandler) resolveLocation(log *slog.Logger, r *http.Request, address domain.Address) *domain.Location {
	if h.geocoder == nil {
		return nil
	}

	result, err := h.geocoder.Geocode(r.Context(), address.Full())
	switch {
	case errors.Is(err, domain.ErrLookupDisabled):
		log.Debug("geocoding disabled, storing event without coordinates")
		return nil
	case err != nil:
		log.Warn("geocoding failed, storing event without coordinates", sl.Err(err))
		return nil
	case result == nil:
		log.Warn("address not found by geocoder", slog.String("address", address.Full()))
		return nil
	}

	location := result.Location
	return &location
}

// GetEvents обрабатывает GET /events.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetEvents()"
	log := h.log.With(slog.String("op", op))

	events, err := h.repository.ListEvents(r.Context())
	if err != nil {
		h.respondServerError(log, fmt.Errorf("failed to get events: %w", err), w)
		return
	}

	response := dto.MapDomainToEventResponseList(events)

	if err := utils.Json(w, http.StatusOK, response); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// GetEvent обрабатывает GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetEvent()"
	log := h.log.With(slog.String("op", op))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(log, errInvalidID, w, http.StatusBadRequest)
		return
	}

	event, err := h.repository.FindEventByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		log.Debug("event not found", slog.Int64("id", id))
		if httpErr := utils.Err(w, http.StatusNotFound, errEventNotFound); httpErr != nil {
			log.Error("error sending http response", sl.Err(httpErr))
		}
		return
	}
	if err != nil {
		h.respondServerError(log, fmt.Errorf("failed to get event %d: %w", id, err), w)
		return
	}

	if err := utils.Json(w, http.StatusOK, dto.MapDomainToEventResponse(event)); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// respondClientError отдаёт 400 для ошибок ввода; всё прочее считается сбоем сервера.
func (h *EventHandler) respondClientError(log *slog.Logger, err error, w http.ResponseWriter) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		metrics.EventValidationFailuresTotal.WithLabelValues(vErr.Field).Inc()
		log.Info("rejected event", slog.String("field", vErr.Field), slog.String("reason", vErr.Message))
		if httpErr := utils.Err(w, http.StatusBadRequest, vErr); httpErr != nil {
			log.Error("error sending http response", sl.Err(httpErr))
		}
	case errors.Is(err, errBodyTooLarge):
		h.respondError(log, errBodyTooLarge, w, http.StatusRequestEntityTooLarge)
	case errors.Is(err, errBadRequest):
		h.respondError(log, err, w, http.StatusBadRequest)
	default:
		h.respondServerError(log, err, w)
	}
}

// respondServerError логирует причину, но клиенту отдаёт только общий текст.
func (h *EventHandler) respondServerError(log *slog.Logger, err error, w http.ResponseWriter) {
	log.Error("handler error", sl.Err(err))
	if httpErr := utils.Err(w, http.StatusInternalServerError, errInternal); httpErr != nil {
		log.Error("error sending http response", sl.Err(httpErr))
	}
}

func (h *EventHandler) respondError(log *slog.Logger, err error, w http.ResponseWriter, status int) {
	log.Info("bad request", sl.Err(err))
	if httpErr := utils.Err(w, status, err); httpErr != nil {
		log.Error("error sending http response", sl.Err(httpErr))
	}
}
