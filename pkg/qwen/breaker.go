package qwen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

const (
	defaultMaxFailures uint32 = 5
	defaultOpenTimeout        = 30 * time.Second
)

type completer interface {
	ChatCompletion(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error)
}

// Breaker is shared by every client built for the process. Once the provider keeps failing
// the circuit opens and calls fail fast until OpenTimeout elapses.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[domain.Completion]
}

type BreakerConfig struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout == 0 {
		openTimeout = defaultOpenTimeout
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker[domain.Completion](gobreaker.Settings{
			Name:        "qwen",
			MaxRequests: 1,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
			IsSuccessful: providerHealthy,
		}),
	}
}

// providerHealthy reports whether err leaves the provider's health untouched: the caller went away,
// or the provider rejected this one request (4xx other than 429).
func providerHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode()
		return status >= http.StatusBadRequest && status < http.StatusInternalServerError &&
			status != http.StatusTooManyRequests
	}
	return false
}

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Guard routes calls to next through the breaker.
func (b *Breaker) Guard(next completer) *guardedClient {
	return &guardedClient{breaker: b, next: next}
}

type guardedClient struct {
	breaker *Breaker
	next    completer
}

func (g *guardedClient) ChatCompletion(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error) {
	out, err := g.breaker.cb.Execute(func() (domain.Completion, error) {
		return g.next.ChatCompletion(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.Completion{}, &domain.UpstreamError{Err: fmt.Errorf("circuit open: %w", err)}
	}
	return out, err
}
