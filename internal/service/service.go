// Package service ties the technique registry, the model gateway and the
// comparison orchestrator together behind the operations the HTTP and CLI
// front ends expose.
package service

import (
	"context"
	"time"

	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

// Request asks for one technique of one family. Nil Temperature and
// MaxTokens select the technique defaults.
type Request struct {
	Family      technique.Family
	Technique   string
	Spec        prompt.Spec
	Temperature *float64
	MaxTokens   *int
}

// Response is a completed single-technique call.
type Response struct {
	Text       string
	Prompt     string
	TokensUsed int
	Model      string
	Timestamp  time.Time
	Family     technique.Family
	Requested  string
	Technique  technique.Technique
	Fallback   bool
}

// Service is safe for concurrent use.
type Service struct {
	gw       compare.Completer
	registry *technique.Registry
	cmp      *compare.Orchestrator
	log      *logger.Logger
	now      func() time.Time
}

// Options configures a Service.
type Options struct {
	Registry *technique.Registry
	Logger   *logger.Logger
	Compare  compare.Options
}

// New returns a Service calling gw.
func New(gw compare.Completer, opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = technique.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		gw:       gw,
		registry: opts.Registry,
		cmp:      compare.New(gw, opts.Registry, opts.Logger, opts.Compare),
		log:      opts.Logger,
		now:      time.Now,
	}
}

// Registry returns the technique registry in use.
func (s *Service) Registry() *technique.Registry { return s.registry }

// Render resolves and renders a prompt without calling the model.
func (s *Service) Render(req Request) (technique.Rendered, error) {
	return s.registry.Render(req.Family, req.Technique, req.Spec)
}

// Prompt renders req and sends the prompt through the gateway.
func (s *Service) Prompt(ctx context.Context, req Request) (Response, error) {
	r, err := s.Render(req)
	if err != nil {
		return Response{}, err
	}
	if r.Resolution.Fallback {
		s.log.Debug("technique fell back to zero_shot",
			"family", req.Family,
			"requested", r.Resolution.Requested,
		)
	}

	temperature := technique.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := r.MaxTokens()
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	labels := llm.LabelsFrom(ctx)
	labels.Family = string(req.Family)
	labels.Technique = string(r.Technique())
	ctx = llm.WithLabels(ctx, labels)

	res, err := s.gw.Complete(ctx, r.Text, maxTokens, temperature)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Text:       res.Text,
		Prompt:     r.Text,
		TokensUsed: res.TokensUsed,
		Model:      res.Model,
		Timestamp:  s.now().UTC(),
		Family:     req.Family,
		Requested:  r.Resolution.Requested,
		Technique:  r.Technique(),
		Fallback:   r.Resolution.Fallback,
	}, nil
}

// Compare runs the technique comparison for req.
func (s *Service) Compare(ctx context.Context, req compare.Request) (compare.Outcome, error) {
	return s.cmp.Run(ctx, req)
}
