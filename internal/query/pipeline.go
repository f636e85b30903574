package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dfstats/deltaquery/internal/core/domain"
	"github.com/dfstats/deltaquery/internal/metrics"
)

// ParamSource produces the user-supplied parameter mapping for one query.
type ParamSource interface {
	Params(ctx context.Context) (domain.Params, error)
}

// Validator checks collected parameters. A non-nil error carries the
// user-facing message; validation failure is an expected outcome, not a fault.
type Validator interface {
	Validate(p domain.Params) error
}

// ParamBuilder turns collected parameters into wire parameters.
type ParamBuilder interface {
	Build(p domain.Params) (domain.Params, error)
}

// Sink receives the normalized payload together with the originally
// collected parameters. Rendering and export live behind this interface.
type Sink interface {
	Deliver(payload domain.EnvelopePayload, p domain.Params) error
}

// CredentialSource supplies the identity cookie for outbound requests.
// Absence is signaled with an error and treated as invalid input.
type CredentialSource interface {
	Cookie(ctx context.Context) (string, error)
}

// Notifier is the pipeline's one-way channel to the user. Every abort path
// produces exactly one Failure call; successful runs produce one Success.
type Notifier interface {
	Failure(descriptor, stage, message string)
	Success(descriptor, label string)
}

// RequestExecutor is what the pipeline dispatches built requests to.
type RequestExecutor interface {
	Execute(ctx context.Context, spec domain.RequestSpec) domain.RequestOutcome
}

// Descriptor is the declarative, read-only configuration for one endpoint.
// The pipeline interprets it and never mutates it.
type Descriptor struct {
	Name      string
	Label     string
	Host      string
	Source    ParamSource
	Validator Validator // optional
	Builder   ParamBuilder
	Sink      Sink
}

// Pipeline stage names, used in logs and notifier messages.
const (
	StageAcquireAuth     = "acquire_auth"
	StageCollectParams   = "collect_params"
	StageValidate        = "validate"
	StageBuildWireParams = "build_wire_params"
	StageExecute         = "execute"
	StageParseEnvelope   = "parse_envelope"
	StageDispatch        = "dispatch"
)

// Config tunes per-run request behavior.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

// Pipeline drives one end-to-end query through a fixed stage sequence.
// Run holds no state between invocations beyond its collaborators, so one
// pipeline value serves any number of descriptors, concurrently if each
// descriptor is only triggered once at a time.
type Pipeline struct {
	exec   RequestExecutor
	creds  CredentialSource
	notify Notifier
	log    *slog.Logger
	cfg    Config
}

// New creates a pipeline. A nil notifier falls back to log-only delivery.
func New(exec RequestExecutor, creds CredentialSource, notify Notifier, log *slog.Logger, cfg Config) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if notify == nil {
		notify = logNotifier{log: log}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Pipeline{exec: exec, creds: creds, notify: notify, log: log, cfg: cfg}
}

// Run executes one query described by d. It returns true only when a result
// was delivered to the sink. Every abort produces one notifier message, and
// the pipeline is immediately reusable regardless of where a run stopped.
func (p *Pipeline) Run(ctx context.Context, d Descriptor) bool {
	runID := uuid.NewString()
	log := p.log.With("descriptor", d.Name, "run_id", runID)

	abort := func(stage, msg string) bool {
		log.Warn("pipeline aborted", "stage", stage, "message", msg)
		p.notify.Failure(d.Name, stage, msg)
		metrics.PipelineRunsTotal.WithLabelValues(d.Name, "aborted").Inc()
		return false
	}

	log.Debug("pipeline run started")

	// AcquireAuth
	if err := ctx.Err(); err != nil {
		return abort(StageAcquireAuth, err.Error())
	}
	cookie, err := p.creds.Cookie(ctx)
	if err != nil {
		return abort(StageAcquireAuth, fmt.Sprintf("credentials unavailable: %v", err))
	}

	// CollectParams
	params, err := collect(ctx, d.Source)
	if err != nil {
		return abort(StageCollectParams, fmt.Sprintf("parameter collection failed: %v", err))
	}
	log.Debug("parameters collected", "params", params)

	// Validate
	if d.Validator != nil {
		if err := d.Validator.Validate(params); err != nil {
			// Expected user-correctable outcome, not an error condition.
			log.Debug("validation rejected input", "reason", err)
			p.notify.Failure(d.Name, StageValidate, err.Error())
			metrics.PipelineRunsTotal.WithLabelValues(d.Name, "rejected").Inc()
			return false
		}
	}

	// BuildWireParams
	wire, err := build(d.Builder, params)
	if err != nil {
		return abort(StageBuildWireParams, fmt.Sprintf("parameter build failed: %v", err))
	}

	// Execute
	if err := ctx.Err(); err != nil {
		return abort(StageExecute, err.Error())
	}
	outcome := p.exec.Execute(ctx, domain.RequestSpec{
		Host:       d.Host,
		Params:     wire,
		Headers:    map[string]string{"Cookie": cookie},
		Timeout:    p.cfg.Timeout,
		MaxRetries: p.cfg.MaxRetries,
	})
	if !outcome.OK {
		return abort(StageExecute,
			fmt.Sprintf("request failed (%s): %s", outcome.Kind, outcome.Message))
	}

	// ParseEnvelope
	payload := ParseEnvelope(outcome.Body)
	if !payload.OK {
		// The query itself completed; the data was simply unavailable.
		// Keep the raw body inspectable instead of discarding the response.
		log.Info("envelope reported failure", "message", payload.Message, "raw", payload.Raw)
		p.notify.Failure(d.Name, StageParseEnvelope, payload.Message)
		metrics.PipelineRunsTotal.WithLabelValues(d.Name, "no_data").Inc()
		return false
	}

	// Dispatch
	if err := dispatch(d.Sink, payload, params); err != nil {
		return abort(StageDispatch, fmt.Sprintf("result handling failed: %v", err))
	}

	log.Info("pipeline run completed", "label", d.Label)
	p.notify.Success(d.Name, d.Label)
	metrics.PipelineRunsTotal.WithLabelValues(d.Name, "completed").Inc()
	return true
}

// collect, build and dispatch guard caller-supplied code: a panic inside a
// descriptor capability must not take the pipeline down with it.

func collect(ctx context.Context, src ParamSource) (params domain.Params, err error) {
	defer recoverTo(&err)
	params, err = src.Params(ctx)
	return
}

func build(b ParamBuilder, p domain.Params) (wire domain.Params, err error) {
	defer recoverTo(&err)
	wire, err = b.Build(p)
	if err == nil {
		err = wire.Validate()
	}
	return
}

func dispatch(s Sink, payload domain.EnvelopePayload, p domain.Params) (err error) {
	defer recoverTo(&err)
	err = s.Deliver(payload, p.Clone())
	return
}

func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}

type logNotifier struct {
	log *slog.Logger
}

func (n logNotifier) Failure(descriptor, stage, message string) {
	n.log.Warn("query failed", "descriptor", descriptor, "stage", stage, "message", message)
}

func (n logNotifier) Success(descriptor, label string) {
	n.log.Info("query completed", "descriptor", descriptor, "label", label)
}
