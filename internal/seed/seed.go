package seed

import (
	_ "embed"
	"fmt"
	"os"

	"eventsMap/internal/models/domain"
	"eventsMap/internal/validator"

	"gopkg.in/yaml.v3"
)

//go:embed events.yaml
var defaultEvents []byte

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	ImageURL    string   `yaml:"image_url"`
	InitialDate string   `yaml:"initial_date"`
	FinalDate   string   `yaml:"final_date"`
	CEP         string   `yaml:"cep"`
	Endereco    string   `yaml:"endereco"`
	Numero      string   `yaml:"numero"`
	Bairro      string   `yaml:"bairro"`
	Cidade      string   `yaml:"cidade"`
	Lat         *float64 `yaml:"lat"`
	Lng         *float64 `yaml:"lng"`
}

// Load читает события из YAML файла; пустой path — встроенный набор.
// Каждое событие проходит тот же валидатор, что и запросы на создание.
func Load(path string) ([]domain.Event, error) {
	data := defaultEvents
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) ([]domain.Event, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}

	events := make([]domain.Event, 0, len(f.Events))
	for i, se := range f.Events {
		event, err := validator.ToEvent(se.draft())
		if err != nil {
			return nil, fmt.Errorf("seed event #%d (%q): %w", i+1, se.Name, err)
		}
		event.ImageURL = se.ImageURL
		events = append(events, event)
	}

	return events, nil
}

func (se seedEvent) draft() domain.EventDraft {
	return domain.EventDraft{
		Name:        se.Name,
		Description: se.Description,
		InitialDate: se.InitialDate,
		FinalDate:   se.FinalDate,
		Address: domain.Address{
			CEP:          se.CEP,
			Street:       se.Endereco,
			Number:       se.Numero,
			Neighborhood: se.Bairro,
			City:         se.Cidade,
		},
		Lat: se.Lat,
		Lng: se.Lng,
	}
}
