package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/telemetry"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite de páginas por listagem, protege contra cursores que não avançam
const maxPages = 500

// get executa um GET com novas tentativas. Falhas de autenticação não são repetidas
// e não há espera depois da última tentativa.
func (c *MetaClient) get(ctx context.Context, token secret.Token, operation, rawURL string, out any) error {
	endpoint := endpointOf(rawURL)

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		lastErr = c.do(ctx, token, rawURL, out)
		if lastErr == nil {
			telemetry.MetaRequestsTotal.WithLabelValues(operation, "success").Inc()
			return nil
		}

		telemetry.MetaRequestsTotal.WithLabelValues(operation, outcomeOf(lastErr)).Inc()

		if ctx.Err() != nil {
			return &RequestError{Operation: operation, Endpoint: endpoint, Attempts: attempt, Err: ctx.Err()}
		}

		if errors.Is(lastErr, domain.ErrRemoteAuth) {
			logrus.WithFields(logrus.Fields{
				"operation": operation,
				"endpoint":  endpoint,
			}).Warn("meta: credencial rejeitada, sem novas tentativas")
			return &RequestError{Operation: operation, Endpoint: endpoint, Attempts: attempt, Err: lastErr}
		}

		if attempt == c.retry.MaxAttempts {
			break
		}

		delay := c.retry.backoff(attempt, lastErr)
		telemetry.MetaRetriesTotal.WithLabelValues(outcomeOf(lastErr)).Inc()

		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"endpoint":  endpoint,
			"attempt":   attempt,
			"delay":     delay.String(),
			"error":     lastErr.Error(),
		}).Warn("meta: tentativa falhou, aguardando para tentar novamente")

		if err := c.sleep(ctx, delay); err != nil {
			return &RequestError{Operation: operation, Endpoint: endpoint, Attempts: attempt, Err: err}
		}
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"endpoint":  endpoint,
		"attempts":  c.retry.MaxAttempts,
		"error":     lastErr.Error(),
	}).Error("meta: tentativas esgotadas")

	return &RequestError{Operation: operation, Endpoint: endpoint, Attempts: c.retry.MaxAttempts, Err: lastErr}
}

// do executa uma única tentativa sob o timeout por chamada
func (c *MetaClient) do(ctx context.Context, token secret.Token, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("erro ao aguardar o limitador de requisições: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Reveal())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.timedOut(ctx, attemptCtx) {
			return &TimeoutError{Timeout: c.timeout}
		}
		return fmt.Errorf("erro ao fazer a requisição: %w", redactURLError(err, rawURL))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.timedOut(ctx, attemptCtx) {
			return &TimeoutError{Timeout: c.timeout}
		}
		return fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return nil
}

// timedOut distingue o timeout da tentativa do cancelamento pelo chamador
func (c *MetaClient) timedOut(parent, attemptCtx context.Context) bool {
	return parent.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
}

func (p RetryPolicy) backoff(attempt int, err error) time.Duration {
	base := p.BaseDelay
	if errors.Is(err, domain.ErrRemoteRateLimit) {
		base = p.RateLimitDelay
	}

	return base * time.Duration(1<<(attempt-1))
}

func parseErrorResponse(statusCode int, body []byte) error {
	var errorResponse metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err != nil || errorResponse.Error.Message == "" {
		errorResponse.Error.Message = http.StatusText(statusCode)
	}

	return &APIError{StatusCode: statusCode, Detail: errorResponse.Error}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrRemoteAuth):
		return "auth_error"
	case errors.Is(err, domain.ErrRemoteRateLimit):
		return "rate_limited"
	case errors.Is(err, domain.ErrRemoteTimeout):
		return "timeout"
	default:
		return "error"
	}
}

// endpointOf retorna apenas o caminho, sem query string
func endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "desconhecido"
	}

	return u.Path
}

// list percorre todas as páginas de uma aresta seguindo paging.next
func list[T any](ctx context.Context, c *MetaClient, token secret.Token, operation, firstURL string) ([]T, error) {
	items := make([]T, 0)
	next := firstURL

	for page := 0; next != "" && page < maxPages; page++ {
		var response metadomain.ListResponse[T]
		if err := c.get(ctx, token, operation, next, &response); err != nil {
			return nil, err
		}

		items = append(items, response.Data...)

		following := withoutAccessToken(response.Paging.Next)
		if following == next {
			break
		}
		next = following
	}

	return items, nil
}

// withoutAccessToken remove o access_token que a Graph API repete em paging.next.
// O token só trafega no header Authorization.
func withoutAccessToken(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	query := u.Query()
	query.Del("access_token")
	u.RawQuery = query.Encode()

	return u.String()
}

// redactURLError troca a URL completa do *url.Error pelo caminho, sem query string
func redactURLError(err error, rawURL string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = endpointOf(rawURL)
	}
	return err
}

func (c *MetaClient) edgeURL(nodeID, edge string, params url.Values) string {
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, nodeID, edge, params.Encode())
}
