package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventsMap/internal/config"
	"eventsMap/internal/metrics"
	"eventsMap/internal/models/domain"
	"eventsMap/internal/models/dto"
	"eventsMap/internal/utils/logger/sl"
)

const serviceName = "geocoding"

// Client — клиент Google Geocoding API. Результаты не кэшируются.
type Client struct {
	logger  *slog.Logger
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient создаёт клиент. Без API ключа клиент работает, но каждый запрос
// завершается ошибкой domain.ErrLookupDisabled.
func NewClient(logger *slog.Logger, cfg config.GeocodingConfig) *Client {
	op := "geocoder.NewClient()"
	log := logger.With(slog.String("op", op))

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		log.Warn("geocoding api key is not set, geocoding disabled")
	} else {
		log.Info("Creating geocoding client", slog.String("baseURL", cfg.BaseURL))
	}

	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 3 * time.Second,
	}

	return &Client{
		logger:  logger,
		baseURL: cfg.BaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: tr},
	}
}

// Enabled — задан ли API ключ; без него геокодинг отключён.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Geocode возвращает координаты первого результата или nil, если совпадений нет.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	op := "geocoder.Client.Geocode()"
	log := c.logger.With(slog.String("op", op))

	start := time.Now()
	result, err := c.geocode(ctx, address)
	if !errors.Is(err, domain.ErrLookupDisabled) {
		metrics.LookupRequestDuration.WithLabelValues(serviceName).Observe(time.Since(start).Seconds())
	}
	metrics.LookupRequestsTotal.WithLabelValues(serviceName, outcome(result, err)).Inc()

	if err != nil {
		log.Debug("geocoding failed", sl.Err(err))
		return nil, err
	}

	return result, nil
}

func (c *Client) geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	if !c.Enabled() {
		return nil, lookupErr(domain.ErrLookupDisabled)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, lookupErr(fmt.Errorf("%w: empty address", domain.ErrLookupMalformed))
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, lookupErr(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, lookupErr(redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, lookupErr(fmt.Errorf("http %d", resp.StatusCode))
	}

	var data dto.GeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, lookupErr(fmt.Errorf("decode response: %w", err))
	}

	switch data.Status {
	case "OK":
		if len(data.Results) == 0 {
			return nil, nil
		}
		result := data.Results[0].ToDomain()
		return &result, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, lookupErr(fmt.Errorf("status %s: %s", data.Status, data.ErrorMessage))
	}
}

// redact убирает ключ из текста ошибки транспорта: в нём может быть полный URL.
func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), secret, "REDACTED"))
}

func lookupErr(err error) error {
	return &domain.LookupError{Service: serviceName, Err: err}
}

func outcome(result *domain.GeocodeResult, err error) string {
	switch {
	case errors.Is(err, domain.ErrLookupDisabled):
		return "disabled"
	case err != nil:
		return "error"
	case result == nil:
		return "no_match"
	default:
		return "ok"
	}
}
