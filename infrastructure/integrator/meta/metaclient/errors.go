package metaclient

import (
	"fmt"
	"net/http"
	"time"

	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

// APIError é uma resposta de erro devolvida pela plataforma
type APIError struct {
	StatusCode int
	Detail     metadomain.ErrorDetails
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api: status %d, código %d, subcódigo %d: %s",
		e.StatusCode, e.Detail.Code, e.Detail.ErrorSubcode, e.Detail.Message)
}

func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Detail.IsTokenExpired()
}

func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Detail.IsRateLimited()
}

func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrRemoteAuth:
		return e.IsAuth()
	case domain.ErrRemoteRateLimit:
		return !e.IsAuth() && e.IsRateLimit()
	}

	return false
}

// TimeoutError indica que a plataforma não respondeu dentro do limite de uma tentativa
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("meta api: sem resposta em %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == domain.ErrRemoteTimeout
}

// RequestError é o erro final de uma chamada, com o endpoint e a última falha
type RequestError struct {
	Operation string
	Endpoint  string
	Attempts  int
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("meta api: %s (%s) falhou após %d tentativa(s): %v", e.Operation, e.Endpoint, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
