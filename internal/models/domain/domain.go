package domain

import (
	"strings"
	"time"
)

// Event - доменная модель мероприятия на карте.
type Event struct {
	ID          int64
	Name        string
	Description string
	InitialDate time.Time
	FinalDate   time.Time
	Address     Address
	ImageURL    string
	Location    *Location
}

// Address — адрес мероприятия, все поля необязательные.
type Address struct {
	CEP          string
	Street       string
	Number       string
	Neighborhood string
	City         string
}

// Full собирает адрес в одну строку для геокодера.
func (a Address) Full() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Number, a.Neighborhood, a.City, a.CEP} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEmpty — ни одно поле адреса не заполнено.
func (a Address) IsEmpty() bool {
	return a.Full() == ""
}

// Location — пара координат.
type Location struct {
	Lat float64
	Lng float64
}

// EventDraft — нормализованный кандидат на создание события.
// JSON и multipart запросы декодируются в него до любой бизнес-логики.
type EventDraft struct {
	Name        string
	Description string
	InitialDate string
	FinalDate   string
	Address     Address
	Lat         *float64
	Lng         *float64
}

// PostalAddress — результат поиска адреса по CEP, не сохраняется.
type PostalAddress struct {
	CEP          string
	Street       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	IBGE         string
	DDD          string
}

// GeocodeResult — лучшая точка для текстового адреса, не сохраняется.
type GeocodeResult struct {
	Location         Location
	FormattedAddress string
}
