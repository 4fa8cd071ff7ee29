// Package technique maps (family, technique) identifiers to prompt renderers,
// their preconditions and their default token ceilings.
//
// The registry is built once and never written afterwards, so it is safe for
// concurrent use. Unknown technique identifiers within a known family resolve
// to that family's zero_shot entry; the resolution records that it fell back
// so callers can report the requested identifier alongside the one used.
package technique

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
)

// Family is a task domain constraining which fields and techniques apply.
type Family string

const (
	General       Family = "general"
	Sentiment     Family = "sentiment"
	Summarization Family = "summarization"
	Content       Family = "content"
	Code          Family = "code"
)

// Technique identifies a prompting strategy within a family.
type Technique string

const (
	ZeroShot              Technique = "zero_shot"
	FewShot               Technique = "few_shot"
	ChainOfThought        Technique = "chain_of_thought"
	RoleBased             Technique = "role_based"
	TemplateBased         Technique = "template_based"
	Advanced              Technique = "advanced"
	Structured            Technique = "structured"
	ConstraintBased       Technique = "constraint_based"
	DetailedSpecification Technique = "detailed_specification"
	StepByStep            Technique = "step_by_step"
)

// Fallback is the technique every family resolves unknown identifiers to.
const Fallback = ZeroShot

// Sampling defaults applied when a request leaves them unset.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
	// ExtendedMaxTokens is the ceiling for techniques whose prompts solicit
	// longer structured output (chain-of-thought and all code generation).
	ExtendedMaxTokens = 800
)

// Renderer produces prompt text from a validated spec.
type Renderer func(prompt.Spec) string

// Precondition reports a ValidationError when spec lacks a field the
// technique needs.
type Precondition func(prompt.Spec) error

// Entry is one registered technique.
type Entry struct {
	ID           Technique
	Description  string
	Render       Renderer
	Precondition Precondition
	MaxTokens    int
}

// Check runs the entry's precondition, if any.
func (e Entry) Check(spec prompt.Spec) error {
	if e.Precondition == nil {
		return nil
	}
	return e.Precondition(spec)
}

// Resolution is the outcome of looking up a requested identifier.
type Resolution struct {
	Family    Family
	Requested string
	Entry     Entry
	// Fallback is true when Requested is not registered for Family and Entry
	// is the family's zero_shot technique.
	Fallback bool
}

// Rendered is a prompt ready for the model gateway, together with what it was
// rendered from.
type Rendered struct {
	Text       string
	Spec       prompt.Spec
	Resolution Resolution
}

// Technique returns the identifier of the technique actually rendered.
func (r Rendered) Technique() Technique { return r.Resolution.Entry.ID }

// MaxTokens returns the default token ceiling of the rendered technique.
func (r Rendered) MaxTokens() int { return r.Resolution.Entry.MaxTokens }

type familyTable struct {
	family      Family
	description string
	order       []Technique
	entries     map[Technique]Entry
	// defaults fills optional fields before preconditions run.
	defaults func(prompt.Spec) prompt.Spec
}

// Registry holds the technique tables of every family.
type Registry struct {
	order    []Family
	families map[Family]*familyTable
}

func newRegistry(tables ...*familyTable) *Registry {
	r := &Registry{families: make(map[Family]*familyTable, len(tables))}
	for _, t := range tables {
		t.entries = make(map[Technique]Entry, len(t.order))
		r.order = append(r.order, t.family)
		r.families[t.family] = t
	}
	return r
}

func (t *familyTable) add(e Entry) *familyTable {
	if _, dup := t.entries[e.ID]; !dup {
		t.order = append(t.order, e.ID)
	}
	t.entries[e.ID] = e
	return t
}

// ParseFamily converts s to a known Family.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.TrimSpace(s))
	if _, ok := builtins.families[f]; !ok {
		return "", apperr.Validation("family", "unknown family %q (available: %s)", s, strings.Join(familyNames(builtins), ", "))
	}
	return f, nil
}

// Families lists registered families in declaration order.
func (r *Registry) Families() []Family {
	return append([]Family(nil), r.order...)
}

// Techniques lists the techniques of f in declaration order, or nil if f is
// not registered.
func (r *Registry) Techniques(f Family) []Technique {
	t, ok := r.families[f]
	if !ok {
		return nil
	}
	return append([]Technique(nil), t.order...)
}

// Lookup returns the entry registered for exactly (f, id).
func (r *Registry) Lookup(f Family, id Technique) (Entry, bool) {
	t, ok := r.families[f]
	if !ok {
		return Entry{}, false
	}
	e, ok := t.entries[id]
	return e, ok
}

// Describe returns the one-line description of f.
func (r *Registry) Describe(f Family) string {
	if t, ok := r.families[f]; ok {
		return t.description
	}
	return ""
}

// Resolve finds the entry for requested within f. An empty identifier selects
// zero_shot without counting as a fallback; an unregistered identifier falls
// back to zero_shot. Only an unknown family is an error.
func (r *Registry) Resolve(f Family, requested string) (Resolution, error) {
	t, ok := r.families[f]
	if !ok {
		return Resolution{}, apperr.Validation("family", "unknown family %q", f)
	}
	requested = strings.TrimSpace(requested)
	if requested == "" {
		requested = string(Fallback)
	}
	res := Resolution{Family: f, Requested: requested}
	if e, ok := t.entries[Technique(requested)]; ok {
		res.Entry = e
		return res, nil
	}
	e, ok := t.entries[Fallback]
	if !ok {
		return Resolution{}, errors.AssertionFailedf("technique: family %q has no %s entry", f, Fallback)
	}
	res.Entry = e
	res.Fallback = true
	return res, nil
}

// Render resolves requested within f, fills family defaults into spec, checks
// the resolved technique's precondition and renders the prompt.
func (r *Registry) Render(f Family, requested string, spec prompt.Spec) (Rendered, error) {
	res, err := r.Resolve(f, requested)
	if err != nil {
		return Rendered{}, err
	}
	if d := r.families[f].defaults; d != nil {
		spec = d(spec)
	}
	if err := res.Entry.Check(spec); err != nil {
		return Rendered{}, errors.Wrapf(err, "technique: %s/%s", f, res.Entry.ID)
	}
	text := res.Entry.Render(spec)
	if strings.TrimSpace(text) == "" {
		return Rendered{}, errors.AssertionFailedf("technique: %s/%s rendered an empty prompt", f, res.Entry.ID)
	}
	return Rendered{Text: text, Spec: spec, Resolution: res}, nil
}

// Catalog returns family → technique identifiers, for listings.
func (r *Registry) Catalog() map[Family][]Technique {
	out := make(map[Family][]Technique, len(r.order))
	for _, f := range r.order {
		out[f] = r.Techniques(f)
	}
	return out
}

func familyNames(r *Registry) []string {
	names := make([]string, 0, len(r.order))
	for _, f := range r.order {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
