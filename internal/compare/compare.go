// Package compare runs one task through several general-family techniques and
// collects the results in a fixed order.
//
// A failure in one technique is recorded on its entry and does not abort the
// others. Entries always appear in the order zero_shot, few_shot (when
// examples are given), chain_of_thought, role_based (when a role is given),
// whether the calls run sequentially or concurrently.
package compare

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

// Completer is the part of the model gateway the orchestrator needs.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (llm.Completion, error)
}

// Request is one comparison. Temperature overrides the default sampling
// temperature for every arm when set.
type Request struct {
	Task        string
	Input       string
	Examples    []prompt.Example
	Role        string
	Temperature *float64
}

// EntryError is the recorded failure of one arm.
type EntryError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Entry is the result of one technique arm. Exactly one of Result and Err is
// set.
type Entry struct {
	Technique technique.Technique
	Prompt    string
	Result    *llm.Completion
	Err       *EntryError
}

// OK reports whether the arm succeeded.
func (e Entry) OK() bool { return e.Err == nil }

// Outcome is a finished comparison.
type Outcome struct {
	ID        string
	Task      string
	Input     string
	Entries   []Entry
	Timestamp time.Time
}

// Attempted lists the techniques in entry order.
func (o Outcome) Attempted() []technique.Technique {
	ids := make([]technique.Technique, len(o.Entries))
	for i, e := range o.Entries {
		ids[i] = e.Technique
	}
	return ids
}

// Failed counts entries that recorded an error.
func (o Outcome) Failed() int {
	n := 0
	for _, e := range o.Entries {
		if !e.OK() {
			n++
		}
	}
	return n
}

// Options configures an Orchestrator.
type Options struct {
	// Parallel issues the arm calls concurrently.
	Parallel bool
}

// Orchestrator runs comparisons. It is safe for concurrent use.
type Orchestrator struct {
	gw       Completer
	registry *technique.Registry
	log      *logger.Logger
	opts     Options
	now      func() time.Time
	newID    func() string
}

// New returns an Orchestrator calling gw. A nil registry selects
// technique.Default(); a nil log discards output.
func New(gw Completer, registry *technique.Registry, log *logger.Logger, opts Options) *Orchestrator {
	if registry == nil {
		registry = technique.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{
		gw:       gw,
		registry: registry,
		log:      log,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

type arm struct {
	id   technique.Technique
	spec prompt.Spec
}

// Plan returns the arms of req in reporting order.
func Plan(req Request) []technique.Technique {
	arms := plan(req)
	ids := make([]technique.Technique, len(arms))
	for i, a := range arms {
		ids[i] = a.id
	}
	return ids
}

func plan(req Request) []arm {
	arms := []arm{{id: technique.ZeroShot, spec: prompt.Spec{Task: req.Task, Input: req.Input}}}
	if len(req.Examples) > 0 {
		arms = append(arms, arm{id: technique.FewShot, spec: prompt.Spec{Task: req.Task, Input: req.Input, Examples: req.Examples}})
	}
	arms = append(arms, arm{id: technique.ChainOfThought, spec: prompt.Spec{
		Input: fmt.Sprintf("Task: %s\nInput: %s", req.Task, req.Input),
	}})
	if strings.TrimSpace(req.Role) != "" {
		arms = append(arms, arm{id: technique.RoleBased, spec: prompt.Spec{
			Role: req.Role,
			Task: fmt.Sprintf("%s\nInput: %s", req.Task, req.Input),
		}})
	}
	return arms
}

func validate(req Request) error {
	if strings.TrimSpace(req.Task) == "" {
		return apperr.Validation("task", "is required")
	}
	if strings.TrimSpace(req.Input) == "" {
		return apperr.Validation("input_text", "is required")
	}
	if t := req.Temperature; t != nil && (math.IsNaN(*t) || *t < llm.MinTemperature || *t > llm.MaxTemperature) {
		return apperr.Validation("temperature", "must be within [%.1f, %.1f], got %g", llm.MinTemperature, llm.MaxTemperature, *t)
	}
	return nil
}

// Run executes every arm of req. It returns an error only when req itself is
// invalid; per-arm failures are recorded on the entries.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Outcome, error) {
	if err := validate(req); err != nil {
		return Outcome{}, err
	}
	temperature := technique.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	arms := plan(req)
	entries := make([]Entry, len(arms))
	labels := llm.LabelsFrom(ctx)

	run := func(i int) {
		a := arms[i]
		actx := llm.WithLabels(ctx, llm.Labels{
			Family:    string(technique.General),
			Technique: string(a.id),
			RequestID: labels.RequestID,
		})
		entries[i] = o.runArm(actx, a, temperature)
	}

	if o.opts.Parallel {
		// Arms never return an error, so the group only joins them.
		var g errgroup.Group
		for i := range arms {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range arms {
			run(i)
		}
	}

	out := Outcome{
		ID:        o.newID(),
		Task:      req.Task,
		Input:     req.Input,
		Entries:   entries,
		Timestamp: o.now().UTC(),
	}
	o.log.Info("comparison finished",
		"comparison_id", out.ID,
		"request_id", labels.RequestID,
		"techniques", len(entries),
		"failed", out.Failed(),
		"parallel", o.opts.Parallel,
	)
	return out, nil
}

func (o *Orchestrator) runArm(ctx context.Context, a arm, temperature float64) Entry {
	e := Entry{Technique: a.id}
	entry, ok := o.registry.Lookup(technique.General, a.id)
	if !ok {
		e.Err = entryError(errors.AssertionFailedf("compare: %s not registered", a.id))
		return e
	}
	if err := entry.Check(a.spec); err != nil {
		e.Err = entryError(err)
		return e
	}
	e.Prompt = entry.Render(a.spec)

	res, err := o.gw.Complete(ctx, e.Prompt, entry.MaxTokens, temperature)
	if err != nil {
		o.log.Warn("comparison arm failed",
			"request_id", llm.LabelsFrom(ctx).RequestID,
			"technique", a.id,
			"kind", apperr.Code(err),
			"error", err,
		)
		e.Err = entryError(err)
		return e
	}
	e.Result = &res
	return e
}

func entryError(err error) *EntryError {
	return &EntryError{Kind: apperr.Code(err), Message: apperr.Message(err)}
}
