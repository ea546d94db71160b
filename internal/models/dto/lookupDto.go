package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"eventsMap/internal/models/domain"
)

// FlexibleBool — при десериализации принимает и bool, и строку "true"/"false".
// ViaCEP в разных версиях отдаёт поле erro то как true, то как "true".
type FlexibleBool bool

func (f *FlexibleBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexibleBool(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}

	return fmt.Errorf("erro: expected bool or string, got %s", string(data))
}

// ViaCEPResponse — ответ https://viacep.com.br/ws/<cep>/json/
type ViaCEPResponse struct {
	CEP         string       `json:"cep"`
	Logradouro  string       `json:"logradouro"`
	Complemento string       `json:"complemento"`
	Bairro      string       `json:"bairro"`
	Localidade  string       `json:"localidade"`
	UF          string       `json:"uf"`
	IBGE        string       `json:"ibge"`
	DDD         string       `json:"ddd"`
	Erro        FlexibleBool `json:"erro"`
}

func (r ViaCEPResponse) ToDomain() domain.PostalAddress {
	return domain.PostalAddress{
		CEP:          r.CEP,
		Street:       r.Logradouro,
		Complement:   r.Complemento,
		Neighborhood: r.Bairro,
		City:         r.Localidade,
		State:        r.UF,
		IBGE:         r.IBGE,
		DDD:          r.DDD,
	}
}

// GeocodeResponse — ответ Google Geocoding API (только нужные поля).
type GeocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (r GeocodeResult) ToDomain() domain.GeocodeResult {
	return domain.GeocodeResult{
		Location: domain.Location{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		},
		FormattedAddress: r.FormattedAddress,
	}
}
