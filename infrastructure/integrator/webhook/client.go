package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrEndpointNotConfigured = errors.New("endpoint de webhook não configurado")
	ErrUnexpectedStatus      = errors.New("webhook respondeu com status inesperado")
)

const zapierEndpoint = "zapier"

// EndpointResolver resolve o nome lógico do webhook para a URL configurada
type EndpointResolver interface {
	WebhookURL(name string) (string, bool)
	ZapierURL() string
}

type Client interface {
	Call(ctx context.Context, endpoint, action string, payload map[string]any) (json.RawMessage, error)
	CallCalendar(ctx context.Context, agenda domain.AgendaType, action string, payload map[string]any) (json.RawMessage, error)
	NotifyZapier(ctx context.Context, payload map[string]any) error
}

type WebhookClient struct {
	httpClient  *http.Client
	resolver    EndpointResolver
	calendarURL string
}

func NewClient(cfg *config.Config, resolver EndpointResolver) Client {
	timeout := cfg.Webhook.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &WebhookClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		resolver:    resolver,
		calendarURL: cfg.Webhook.CalendarURL,
	}
}

// Call envia {"action": action, ...payload} para o endpoint nomeado.
// Chaves do payload sobrescrevem "action".
func (c *WebhookClient) Call(ctx context.Context, endpoint, action string, payload map[string]any) (json.RawMessage, error) {
	url, ok := c.resolver.WebhookURL(endpoint)
	if !ok || url == "" {
		return nil, fmt.Errorf("%w: %s", ErrEndpointNotConfigured, endpoint)
	}

	return c.post(ctx, endpoint, url, buildBody(action, payload))
}

func (c *WebhookClient) CallCalendar(ctx context.Context, agenda domain.AgendaType, action string, payload map[string]any) (json.RawMessage, error) {
	if c.calendarURL == "" {
		return nil, fmt.Errorf("%w: agenda", ErrEndpointNotConfigured)
	}

	return c.post(ctx, "agenda_"+string(agenda), c.calendarURL+agenda.EndpointSuffix(), buildBody(action, payload))
}

func (c *WebhookClient) NotifyZapier(ctx context.Context, payload map[string]any) error {
	url := c.resolver.ZapierURL()
	if url == "" {
		return fmt.Errorf("%w: %s", ErrEndpointNotConfigured, zapierEndpoint)
	}

	_, err := c.post(ctx, zapierEndpoint, url, payload)
	return err
}

func buildBody(action string, payload map[string]any) map[string]any {
	body := make(map[string]any, len(payload)+1)
	body["action"] = action
	for k, v := range payload {
		body[k] = v
	}
	return body
}

func (c *WebhookClient) post(ctx context.Context, endpoint, url string, body map[string]any) (json.RawMessage, error) {
	logger := log.ForComponent(ctx, "webhook").WithField("endpoint", endpoint)

	encoded, err := jsonAPI.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.WebhookCalls.WithLabelValues(endpoint, "error").Inc()
		logger.WithError(err).Error("falha ao chamar webhook")
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.WebhookCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.WebhookCalls.WithLabelValues(endpoint, "status_error").Inc()
		logger.WithField("status_code", resp.StatusCode).Warn("webhook respondeu com erro")
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	metrics.WebhookCalls.WithLabelValues(endpoint, "success").Inc()

	return decodeBody(respBody), nil
}

// decodeBody devolve o corpo como JSON; respostas vazias ou em texto puro viram string JSON
func decodeBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}

	if jsonAPI.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}

	quoted, err := jsonAPI.Marshal(string(trimmed))
	if err != nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(quoted)
}
