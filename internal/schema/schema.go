// Package schema defines the JSON documents the service reads and writes.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/service"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

// EntryStatus marks a comparison entry as succeeded or failed.
type EntryStatus string

const (
	StatusOK    EntryStatus = "ok"
	StatusError EntryStatus = "error"
)

// PromptRequest is the body accepted by the single-technique endpoints. Each
// endpoint reads the fields relevant to its family; the rest are ignored.
type PromptRequest struct {
	Task           string           `json:"task" form:"task"`
	InputText      string           `json:"input_text" form:"input_text"`
	Text           string           `json:"text" form:"text"`
	Problem        string           `json:"problem" form:"problem"`
	Role           string           `json:"role" form:"role"`
	Context        string           `json:"context" form:"context"`
	Topic          string           `json:"topic" form:"topic"`
	Technique      string           `json:"technique" form:"technique"`
	Examples       []prompt.Example `json:"examples" form:"-"`
	SummaryLength  string           `json:"summary_length" form:"summary_length"`
	ContentType    string           `json:"content_type" form:"content_type"`
	TargetAudience string           `json:"target_audience" form:"target_audience"`
	Language       string           `json:"language" form:"language"`
	Temperature    *float64         `json:"temperature" form:"temperature"`
	MaxTokens      *int             `json:"max_tokens" form:"max_tokens"`
}

// CompareRequest is the body of the comparison endpoint.
type CompareRequest struct {
	Task        string           `json:"task" form:"task"`
	InputText   string           `json:"input_text" form:"input_text"`
	Examples    []prompt.Example `json:"examples" form:"-"`
	Role        string           `json:"role" form:"role"`
	Temperature *float64         `json:"temperature" form:"temperature"`
}

// PromptResponse is returned by every single-technique endpoint.
type PromptResponse struct {
	Response          string    `json:"response"`
	PromptUsed        string    `json:"prompt_used"`
	TokensUsed        int       `json:"tokens_used"`
	Model             string    `json:"model"`
	Timestamp         time.Time `json:"timestamp"`
	Family            string    `json:"family"`
	Technique         string    `json:"technique"`
	ResolvedTechnique string    `json:"resolved_technique"`
	Fallback          bool      `json:"fallback"`
}

// NewPromptResponse converts a service response.
func NewPromptResponse(r service.Response) PromptResponse {
	return PromptResponse{
		Response:          r.Text,
		PromptUsed:        r.Prompt,
		TokensUsed:        r.TokensUsed,
		Model:             r.Model,
		Timestamp:         r.Timestamp,
		Family:            string(r.Family),
		Technique:         r.Requested,
		ResolvedTechnique: string(r.Technique),
		Fallback:          r.Fallback,
	}
}

// EntryError is the error record of a failed comparison entry.
type EntryError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ComparisonEntry is one technique's result within a comparison.
type ComparisonEntry struct {
	Technique  string      `json:"-"`
	Status     EntryStatus `json:"status"`
	Response   string      `json:"response,omitempty"`
	PromptUsed string      `json:"prompt_used"`
	TokensUsed *int        `json:"tokens_used,omitempty"`
	Model      string      `json:"model,omitempty"`
	Error      *EntryError `json:"error,omitempty"`
}

// ComparisonResults is an ordered technique → entry mapping. It encodes as a
// JSON object whose keys keep slice order.
type ComparisonResults []ComparisonEntry

// MarshalJSON writes the entries as an object in slice order.
func (r ComparisonResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Technique)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal %s: %w", e.Technique, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of entries, keeping document order.
func (r *ComparisonResults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("schema: comparison_results: expected object, got %v", tok)
	}
	out := ComparisonResults{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var e ComparisonEntry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("schema: comparison_results[%s]: %w", key, err)
		}
		e.Technique = key
		out = append(out, e)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

// ComparisonResponse is returned by the comparison endpoint.
type ComparisonResponse struct {
	ID                 string            `json:"id"`
	ComparisonResults  ComparisonResults `json:"comparison_results"`
	Task               string            `json:"task"`
	Input              string            `json:"input"`
	Timestamp          time.Time         `json:"timestamp"`
	TechniquesCompared []string          `json:"techniques_compared"`
}

// NewComparisonResponse converts an orchestrator outcome.
func NewComparisonResponse(o compare.Outcome) ComparisonResponse {
	resp := ComparisonResponse{
		ID:                 o.ID,
		ComparisonResults:  make(ComparisonResults, 0, len(o.Entries)),
		Task:               o.Task,
		Input:              o.Input,
		Timestamp:          o.Timestamp,
		TechniquesCompared: make([]string, 0, len(o.Entries)),
	}
	for _, e := range o.Entries {
		ce := ComparisonEntry{Technique: string(e.Technique), PromptUsed: e.Prompt}
		if e.OK() {
			ce.Status = StatusOK
			ce.Response = e.Result.Text
			tokens := e.Result.TokensUsed
			ce.TokensUsed = &tokens
			ce.Model = e.Result.Model
		} else {
			ce.Status = StatusError
			ce.Error = &EntryError{Kind: e.Err.Kind, Message: e.Err.Message}
		}
		resp.ComparisonResults = append(resp.ComparisonResults, ce)
		resp.TechniquesCompared = append(resp.TechniquesCompared, string(e.Technique))
	}
	return resp
}

// ErrorBody is the payload of ErrorEnvelope.
type ErrorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// TechniqueInfo describes one registered technique.
type TechniqueInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	MaxTokens   int    `json:"max_tokens"`
}

// FamilyInfo lists a family's techniques in registration order.
type FamilyInfo struct {
	Family      string          `json:"family"`
	Description string          `json:"description"`
	Techniques  []TechniqueInfo `json:"techniques"`
}

// NewFamilyInfos lists every family of r with its techniques in
// registration order.
func NewFamilyInfos(r *technique.Registry) []FamilyInfo {
	out := make([]FamilyInfo, 0, len(r.Families()))
	for _, f := range r.Families() {
		fi := FamilyInfo{Family: string(f), Description: r.Describe(f)}
		for _, id := range r.Techniques(f) {
			e, _ := r.Lookup(f, id)
			fi.Techniques = append(fi.Techniques, TechniqueInfo{
				ID:          string(id),
				Description: e.Description,
				MaxTokens:   e.MaxTokens,
			})
		}
		out = append(out, fi)
	}
	return out
}

// Health is the body of the health endpoint.
type Health struct {
	Status    string    `json:"status"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}
