// Package prompt renders technique-specific prompt text from structured
// request fields.
//
// Every renderer is a pure function: no I/O, no hidden state, and the same
// arguments always produce byte-identical output. Supplied fields are
// substituted verbatim. Renderers assume their inputs were validated by the
// caller (see package technique) and never fail.
package prompt

import (
	"strings"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
)

// Example is one labelled input/output pair for few-shot prompts.
type Example struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Length is a summarization length qualifier.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// DefaultLength is used when a summarization request names no length.
const DefaultLength = LengthMedium

var lengthPhrases = map[Length]string{
	LengthShort:  "1-2 sentences",
	LengthMedium: "3-4 sentences",
	LengthLong:   "a full paragraph",
}

// Phrase returns the descriptive phrase for l, or "" if l is not a known
// qualifier.
func (l Length) Phrase() string {
	return lengthPhrases[l]
}

// ParseLength converts s to a Length. The empty string selects DefaultLength;
// any value outside {short, medium, long} is a validation error.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLength, nil
	}
	l := Length(s)
	if _, ok := lengthPhrases[l]; !ok {
		return "", apperr.Validation("summary_length", "unknown length %q (must be short, medium or long)", s)
	}
	return l, nil
}

// SummaryOptions are the summarization family's qualifiers.
type SummaryOptions struct {
	Length Length
}

// DefaultAudience is the content audience used when none is given.
const DefaultAudience = "general"

// ContentOptions are the content-generation family's qualifiers.
type ContentOptions struct {
	// Type is the kind of content, e.g. "blog post".
	Type string
	// Audience defaults to DefaultAudience.
	Audience string
}

// CodeOptions are the code-generation family's qualifiers.
type CodeOptions struct {
	// Language is a free-text label; it is not checked against any list.
	Language string
}

// Spec carries every field a renderer may consume. Which fields are required
// depends on the technique; package technique enforces that before rendering.
//
// For the content family Task holds the topic; for sentiment and
// summarization Input holds the text under analysis; for the general
// chain-of-thought renderer Input holds the problem statement.
type Spec struct {
	Task     string
	Input    string
	Examples []Example
	Role     string
	Context  string

	Summary SummaryOptions
	Content ContentOptions
	Code    CodeOptions
}
