package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventsMap/internal/models/domain"
	"eventsMap/internal/transport/httpServer/handlers/dto"
	"eventsMap/internal/utils"
	"eventsMap/internal/utils/logger/sl"

	"github.com/go-chi/chi/v5"
)

var (
	errUpstream        = errors.New("lookup service unavailable")
	errGeocodeDisabled = errors.New("geocoding is not configured")
	errMissingAddress  = errors.New("address is required")
	errMalformedCEP    = errors.New("cep must be 8 digits")
	errPostalNotFound  = errors.New("cep not found")
)

// LookupHandler проксирует поиск адреса по CEP и геокодинг для формы создания.
type LookupHandler struct {
	addresses AddressLookup
	geocoder  Geocoder
	log       *slog.Logger
}

func NewLookupHandler(log *slog.Logger, addresses AddressLookup, geocoder Geocoder) *LookupHandler {
	return &LookupHandler{
		addresses: addresses,
		geocoder:  geocoder,
		log:       log,
	}
}

// LookupCEP обрабатывает GET /lookup/cep/{cep}. Дефис в CEP допускается.
func (h *LookupHandler) LookupCEP(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.LookupHandler.LookupCEP()"
	log := h.log.With(slog.String("op", op))

	cep := strings.ReplaceAll(strings.TrimSpace(chi.URLParam(r, "cep")), "-", "")

	address, err := h.addresses.LookupCEP(r.Context(), cep)
	switch {
	case errors.Is(err, domain.ErrLookupMalformed):
		h.respond(log, w, http.StatusBadRequest, errMalformedCEP)
		return
	case errors.Is(err, domain.ErrLookupNotFound):
		h.respond(log, w, http.StatusNotFound, errPostalNotFound)
		return
	case err != nil:
		log.Error("cep lookup failed", sl.Err(err))
		h.respond(log, w, http.StatusBadGateway, errUpstream)
		return
	}

	if err := utils.Json(w, http.StatusOK, dto.MapPostalAddressToResponse(address)); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// Geocode обрабатывает GET /lookup/geocode?address=...
// Если совпадений нет, в ответе null.
func (h *LookupHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.LookupHandler.Geocode()"
	log := h.log.With(slog.String("op", op))

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		h.respond(log, w, http.StatusBadRequest, errMissingAddress)
		return
	}

	result, err := h.geocoder.Geocode(r.Context(), address)
	switch {
	case errors.Is(err, domain.ErrLookupDisabled):
		h.respond(log, w, http.StatusServiceUnavailable, errGeocodeDisabled)
		return
	case errors.Is(err, domain.ErrLookupMalformed):
		h.respond(log, w, http.StatusBadRequest, errMissingAddress)
		return
	case err != nil:
		log.Error("geocoding failed", sl.Err(err))
		h.respond(log, w, http.StatusBadGateway, errUpstream)
		return
	}

	if err := utils.Json(w, http.StatusOK, dto.MapGeocodeToResponse(result)); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

func (h *LookupHandler) respond(log *slog.Logger, w http.ResponseWriter, status int, err error) {
	if httpErr := utils.Err(w, status, err); httpErr != nil {
		log.Error("error sending http response", sl.Err(httpErr))
	}
}
