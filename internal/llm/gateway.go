package llm

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
)

const tracerName = "github.com/wonwomen07/prompt-engineering/internal/llm"

// Temperature bounds accepted by every provider.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Labels identify the request a model call belongs to. They travel in the
// context so observers can attribute calls without widening Complete.
type Labels struct {
	Family    string
	Technique string
	RequestID string
}

type labelsKey struct{}

// WithLabels returns a copy of ctx carrying l.
func WithLabels(ctx context.Context, l Labels) context.Context {
	return context.WithValue(ctx, labelsKey{}, l)
}

// LabelsFrom returns the labels stored in ctx, or the zero value.
func LabelsFrom(ctx context.Context) Labels {
	if ctx == nil {
		return Labels{}
	}
	l, _ := ctx.Value(labelsKey{}).(Labels)
	return l
}

// Call describes one finished model call, successful or not.
type Call struct {
	Provider   string
	Model      string
	Labels     Labels
	TokensUsed int
	Duration   time.Duration
	Err        error
}

// Observer is notified after every model call. Observers run on the caller's
// goroutine before Complete returns, so a slow observer delays the response.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveCall(ctx context.Context, c Call)
}

// Gateway wraps a Provider with argument checks, error normalization,
// tracing and call observers. It is safe for concurrent use.
type Gateway struct {
	provider  Provider
	name      string
	model     string
	timeout   time.Duration
	observers []Observer
	tracer    trace.Tracer
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithObservers registers observers notified after each call.
func WithObservers(obs ...Observer) GatewayOption {
	return func(g *Gateway) {
		for _, o := range obs {
			if o != nil {
				g.observers = append(g.observers, o)
			}
		}
	}
}

// WithTimeout bounds each call. Zero leaves the caller's deadline alone.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) GatewayOption {
	return func(g *Gateway) { g.tracer = t }
}

// NewGateway returns a Gateway over p. name and model describe p for error
// messages, spans and observers; model is also reported when the provider
// omits it from a response.
func NewGateway(p Provider, name, model string, opts ...GatewayOption) *Gateway {
	g := &Gateway{provider: p, name: name, model: model}
	for _, o := range opts {
		o(g)
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(tracerName)
	}
	return g
}

// Open builds the provider described by cfg through NewProvider and wraps it
// in a Gateway.
func Open(cfg ProviderConfig, opts ...GatewayOption) (*Gateway, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Name))
	if name == "" {
		name = "openai"
	}
	cfg.Name = name
	if cfg.Model == "" {
		cfg.Model = DefaultModels[name]
	}
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "llm: create provider")
	}
	if cfg.Timeout > 0 {
		opts = append([]GatewayOption{WithTimeout(cfg.Timeout)}, opts...)
	}
	return NewGateway(p, name, cfg.Model, opts...), nil
}

// Provider returns the configured provider name.
func (g *Gateway) Provider() string { return g.name }

// Model returns the configured model name.
func (g *Gateway) Model() string { return g.model }

// Complete sends prompt to the provider. Bad arguments are reported as
// *apperr.ValidationError without contacting the provider; everything that
// goes wrong afterwards is an *apperr.BackendError.
func (g *Gateway) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (Completion, error) {
	if err := checkArgs(prompt, maxTokens, temperature); err != nil {
		return Completion{}, err
	}

	labels := LabelsFrom(ctx)
	ctx, span := g.tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", g.name),
		attribute.String("llm.model", g.model),
		attribute.Int("llm.max_tokens", maxTokens),
		attribute.Float64("llm.temperature", temperature),
		attribute.String("prompt.family", labels.Family),
		attribute.String("prompt.technique", labels.Technique),
	))
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := g.provider.Complete(ctx, prompt, maxTokens, temperature)
	if err == nil && strings.TrimSpace(out.Text) == "" {
		err = errors.New("empty completion")
	}
	if err != nil && !apperr.IsBackend(err) {
		err = apperr.Backend(g.name, err)
	}
	if err == nil && out.Model == "" {
		out.Model = g.model
	}

	call := Call{
		Provider: g.name,
		Model:    g.model,
		Labels:   labels,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.Message(err))
	} else {
		call.Model = out.Model
		call.TokensUsed = out.TokensUsed
		span.SetAttributes(attribute.Int("llm.tokens_used", out.TokensUsed))
	}
	// Observers run after a timed-out call too.
	octx := context.WithoutCancel(ctx)
	for _, o := range g.observers {
		o.ObserveCall(octx, call)
	}
	if err != nil {
		return Completion{}, err
	}
	return out, nil
}

func checkArgs(prompt string, maxTokens int, temperature float64) error {
	if strings.TrimSpace(prompt) == "" {
		return apperr.Validation("prompt", "is empty")
	}
	if maxTokens <= 0 {
		return apperr.Validation("max_tokens", "must be positive, got %d", maxTokens)
	}
	if math.IsNaN(temperature) || temperature < MinTemperature || temperature > MaxTemperature {
		return apperr.Validation("temperature", "must be within [%.1f, %.1f], got %g", MinTemperature, MaxTemperature, temperature)
	}
	return nil
}
