package mqttbridge

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RelayConfig opciones del cliente HTTP hacia la API de ingesta.
type RelayConfig struct {
	URL          string
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// StatusError respuesta no 201 de la API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api respondió %d: %s", e.Status, e.Body)
}

// Relay reenvía payloads a POST /api/dispatches. Reintenta en errores de
// transporte y respuestas 5xx; un 4xx es definitivo.
type Relay struct {
	client *resty.Client
	url    string
}

// NewRelay construye el cliente resty con timeout y reintentos acotados.
func NewRelay(cfg RelayConfig) *Relay {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Relay{client: client, url: cfg.URL}
}

// Forward envía el payload tal cual. Solo 201 cuenta como éxito.
func (r *Relay) Forward(ctx context.Context, payload []byte) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(r.url)
	if err != nil {
		return fmt.Errorf("post %s: %w", r.url, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return &StatusError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
