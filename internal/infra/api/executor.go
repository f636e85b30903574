package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dfstats/deltaquery/internal/core/domain"
	"github.com/dfstats/deltaquery/internal/infra/cache"
	"github.com/dfstats/deltaquery/internal/metrics"
)

// DefaultPath is the IDE query endpoint every chart request goes through.
const DefaultPath = "/ide/"

// Bodies shorter than this are logged as suspicious; the remote API is known
// to occasionally return minimal valid bodies, so they still count as success.
const minPlausibleBody = 10

// Doer executes a single HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config tunes executor behavior.
type Config struct {
	// BackoffUnit is the base delay; attempt n sleeps 2^n units. No ceiling.
	BackoffUnit time.Duration
}

// Executor performs one logical request with bounded retries, exponential
// backoff, and response caching. It never returns a Go error across its
// boundary; every failure path resolves to a Failure outcome.
type Executor struct {
	client Doer
	cache  cache.ResponseCache
	log    *slog.Logger

	backoffUnit time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// New creates an executor backed by a tuned HTTP client.
func New(c cache.ResponseCache, log *slog.Logger, cfg Config) *Executor {
	if log == nil {
		log = slog.Default()
	}
	unit := cfg.BackoffUnit
	if unit <= 0 {
		unit = time.Second
	}
	return &Executor{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:       c,
		log:         log,
		backoffUnit: unit,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Execute runs the request described by spec. A live cache entry
// short-circuits the network path entirely, including retry accounting.
func (e *Executor) Execute(ctx context.Context, spec domain.RequestSpec) domain.RequestOutcome {
	if spec.Host == "" || len(spec.Params) == 0 {
		return domain.Failure(domain.KindInvalidInput, "request spec missing host or params")
	}
	if err := spec.Params.Validate(); err != nil {
		return domain.Failure(domain.KindInvalidInput, err.Error())
	}

	reqID := uuid.NewString()
	log := e.log.With("host", spec.Host, "request_id", reqID)

	key := spec.Fingerprint()
	if body, ok := e.cache.Get(ctx, key); ok {
		metrics.CacheHitsTotal.Inc()
		log.Debug("serving cached response", "key", key)
		return domain.Success(body)
	}

	maxAttempts := spec.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	start := time.Now()
	var last domain.RequestOutcome
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			metrics.RetriesTotal.WithLabelValues(spec.Host).Inc()
		}
		metrics.RequestsTotal.WithLabelValues(spec.Host).Inc()

		outcome, retryable := e.attempt(ctx, spec, log, attempt)
		if outcome.OK {
			metrics.RequestLatency.WithLabelValues(spec.Host).Observe(time.Since(start).Seconds())
			e.cache.Put(ctx, key, outcome.Body)
			log.Info("request succeeded", "attempt", attempt+1)
			return outcome
		}

		last = outcome
		if !retryable {
			break
		}
		if attempt == maxAttempts-1 {
			break
		}

		delay := e.backoffUnit << uint(attempt)
		log.Warn("retryable failure, backing off",
			"attempt", attempt+1, "max_attempts", maxAttempts,
			"kind", outcome.Kind, "delay", delay)
		if err := e.sleep(ctx, delay); err != nil {
			last = domain.Failure(domain.ClassifyTransport(err), err.Error())
			break
		}
	}

	metrics.RequestErrorsTotal.WithLabelValues(spec.Host, string(last.Kind)).Inc()
	log.Error("request failed", "kind", last.Kind, "message", last.Message)
	return last
}

// attempt performs a single try and reports whether the failure is worth
// retrying. 4xx kinds fail fast: the request itself is invalid.
func (e *Executor) attempt(
	ctx context.Context,
	spec domain.RequestSpec,
	log *slog.Logger,
	attempt int,
) (domain.RequestOutcome, bool) {
	reqCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	req, err := buildRequest(reqCtx, spec)
	if err != nil {
		return domain.Failure(domain.KindInvalidInput, err.Error()), false
	}

	resp, err := e.client.Do(req)
	if err != nil {
		kind := domain.ClassifyTransport(err)
		log.Warn("transport failure", "attempt", attempt+1, "kind", kind, "error", err)
		return domain.Failure(kind, err.Error()), kind.Retryable()
	}
	defer resp.Body.Close()

	if kind := domain.ClassifyStatus(resp.StatusCode); kind != "" {
		msg := fmt.Sprintf("http %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		log.Warn("status failure", "attempt", attempt+1, "status", resp.StatusCode, "kind", kind)
		return domain.Failure(kind, msg), kind == domain.KindServerError
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := domain.ClassifyTransport(err)
		log.Warn("body read failure", "attempt", attempt+1, "error", err)
		return domain.Failure(kind, err.Error()), kind.Retryable()
	}

	body := string(data)
	if len(body) < minPlausibleBody {
		log.Warn("implausibly short response body", "length", len(body))
	}
	return domain.Success(body), false
}

func buildRequest(ctx context.Context, spec domain.RequestSpec) (*http.Request, error) {
	path := spec.Path
	if path == "" {
		path = DefaultPath
	}

	values := url.Values{}
	for k, v := range spec.Params {
		values.Set(k, fmt.Sprint(v))
	}
	target := fmt.Sprintf("https://%s%s?%s", spec.Host, path, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;")
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
