package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"eventsMap/internal/config"
	"eventsMap/internal/metrics"
	"eventsMap/internal/models/domain"
	"eventsMap/internal/models/dto"
	"eventsMap/internal/utils/logger/sl"

	"github.com/go-playground/validator/v10"
)

const serviceName = "viacep"

// Client — клиент справочника адресов ViaCEP. Без ретраев и кэша.
type Client struct {
	logger   *slog.Logger
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

func NewClient(logger *slog.Logger, cfg config.ViaCEPConfig) *Client {
	op := "viacep.NewClient()"
	log := logger.With(slog.String("op", op))

	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 3 * time.Second,
	}

	log.Info("Creating viacep client", slog.String("baseURL", cfg.BaseURL))

	return &Client{
		logger:   logger,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout, Transport: tr},
		validate: validator.New(),
	}
}

// LookupCEP ищет адрес по CEP из 8 цифр без дефиса.
func (c *Client) LookupCEP(ctx context.Context, cep string) (domain.PostalAddress, error) {
	op := "viacep.Client.LookupCEP()"
	log := c.logger.With(slog.String("op", op), slog.String("cep", cep))

	start := time.Now()
	address, err := c.lookup(ctx, cep)
	metrics.LookupRequestDuration.WithLabelValues(serviceName).Observe(time.Since(start).Seconds())
	metrics.LookupRequestsTotal.WithLabelValues(serviceName, outcome(err)).Inc()

	if err != nil {
		log.Debug("cep lookup failed", sl.Err(err))
		return domain.PostalAddress{}, err
	}

	return address, nil
}

func (c *Client) lookup(ctx context.Context, cep string) (domain.PostalAddress, error) {
	if err := c.validate.Var(cep, "required,len=8,numeric"); err != nil {
		return domain.PostalAddress{}, lookupErr(fmt.Errorf("%w: cep must be 8 digits", domain.ErrLookupMalformed))
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.PostalAddress{}, lookupErr(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.PostalAddress{}, lookupErr(err)
	}
	defer resp.Body.Close()

	// ViaCEP отвечает 400 на синтаксически неверный CEP
	if resp.StatusCode == http.StatusBadRequest {
		return domain.PostalAddress{}, lookupErr(domain.ErrLookupMalformed)
	}
	if resp.StatusCode/100 != 2 {
		return domain.PostalAddress{}, lookupErr(fmt.Errorf("http %d", resp.StatusCode))
	}

	var data dto.ViaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return domain.PostalAddress{}, lookupErr(fmt.Errorf("decode response: %w", err))
	}
	if data.Erro {
		return domain.PostalAddress{}, lookupErr(domain.ErrLookupNotFound)
	}

	return data.ToDomain(), nil
}

func lookupErr(err error) error {
	return &domain.LookupError{Service: serviceName, Err: err}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
