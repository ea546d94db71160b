package dto

import (
	"eventsMap/internal/models/domain"
	"eventsMap/internal/validator"
)

// EventResponse — DTO для ответа с данными события.
// Отсутствующие image_url, даты и координаты сериализуются как null.
type EventResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	InitialDate *string  `json:"initial_date"`
	FinalDate   *string  `json:"final_date"`
	CEP         string   `json:"cep"`
	Endereco    string   `json:"endereco"`
	Numero      string   `json:"numero"`
	Bairro      string   `json:"bairro"`
	Cidade      string   `json:"cidade"`
	ImageURL    *string  `json:"image_url"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// CreateEventRequest — JSON тело POST /events.
type CreateEventRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InitialDate string          `json:"initialDate"`
	FinalDate   string          `json:"finalDate"`
	Address     AddressRequest  `json:"address"`
	Location    LocationRequest `json:"location"`
}

type AddressRequest struct {
	CEP      string `json:"cep"`
	Endereco string `json:"endereco"`
	Numero   string `json:"numero"`
	Bairro   string `json:"bairro"`
	Cidade   string `json:"cidade"`
}

type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// CreateEventResponse — ответ на успешное создание.
type CreateEventResponse struct {
	ID int64 `json:"id"`
}

// PostalAddressResponse повторяет поля ViaCEP, которые ожидает форма.
type PostalAddressResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	DDD         string `json:"ddd"`
}

type LocationResponse struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

// ToDraft конвертирует JSON запрос в нормализованный черновик.
func (req CreateEventRequest) ToDraft() domain.EventDraft {
	return domain.EventDraft{
		Name:        req.Name,
		Description: req.Description,
		InitialDate: req.InitialDate,
		FinalDate:   req.FinalDate,
		Address: domain.Address{
			CEP:          req.Address.CEP,
			Street:       req.Address.Endereco,
			Number:       req.Address.Numero,
			Neighborhood: req.Address.Bairro,
			City:         req.Address.Cidade,
		},
		Lat: req.Location.Lat,
		Lng: req.Location.Lng,
	}
}

// MapDomainToEventResponse конвертирует доменную модель Event в EventResponse DTO.
func MapDomainToEventResponse(e domain.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CEP:         e.Address.CEP,
		Endereco:    e.Address.Street,
		Numero:      e.Address.Number,
		Bairro:      e.Address.Neighborhood,
		Cidade:      e.Address.City,
	}
	if !e.InitialDate.IsZero() {
		s := validator.FormatInstant(e.InitialDate)
		resp.InitialDate = &s
	}
	if !e.FinalDate.IsZero() {
		s := validator.FormatInstant(e.FinalDate)
		resp.FinalDate = &s
	}
	if e.ImageURL != "" {
		s := e.ImageURL
		resp.ImageURL = &s
	}
	if e.Location != nil {
		lat, lng := e.Location.Lat, e.Location.Lng
		resp.Lat = &lat
		resp.Lng = &lng
	}
	return resp
}

// MapDomainToEventResponseList конвертирует слайс доменных моделей в слайс DTO.
// Пустой список отдаётся как [], а не null.
func MapDomainToEventResponseList(events []domain.Event) []EventResponse {
	result := make([]EventResponse, len(events))
	for i, e := range events {
		result[i] = MapDomainToEventResponse(e)
	}
	return result
}

func MapPostalAddressToResponse(a domain.PostalAddress) PostalAddressResponse {
	return PostalAddressResponse{
		CEP:         a.CEP,
		Logradouro:  a.Street,
		Complemento: a.Complement,
		Bairro:      a.Neighborhood,
		Localidade:  a.City,
		UF:          a.State,
		IBGE:        a.IBGE,
		DDD:         a.DDD,
	}
}

func MapGeocodeToResponse(g *domain.GeocodeResult) *LocationResponse {
	if g == nil {
		return nil
	}
	return &LocationResponse{
		Lat:              g.Location.Lat,
		Lng:              g.Location.Lng,
		FormattedAddress: g.FormattedAddress,
	}
}
