// Package catalog serves the embedded prompt templates and sample requests.
package catalog

import (
	_ "embed"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/wonwomen07/prompt-engineering/internal/prompt"
)

//go:embed catalog.yaml
var raw []byte

// SampleRequest is a ready-to-send request body for one of the family
// endpoints.
type SampleRequest struct {
	Text          string           `yaml:"text" json:"text"`
	Technique     string           `yaml:"technique" json:"technique"`
	SummaryLength string           `yaml:"summary_length,omitempty" json:"summary_length,omitempty"`
	Examples      []prompt.Example `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Summarization holds the summarization samples and the text they share.
type Summarization struct {
	SampleText        string        `yaml:"sample_text" json:"sample_text"`
	ZeroShotExample   SampleRequest `yaml:"zero_shot_example" json:"zero_shot_example"`
	StructuredExample SampleRequest `yaml:"structured_example" json:"structured_example"`
}

// Sentiment holds the sentiment samples.
type Sentiment struct {
	ZeroShotExample SampleRequest `yaml:"zero_shot_example" json:"zero_shot_example"`
	FewShotExample  SampleRequest `yaml:"few_shot_example" json:"few_shot_example"`
}

// Catalog is the decoded catalog.yaml.
type Catalog struct {
	// Templates maps a task category to technique → template text.
	Templates map[string]map[string]string `yaml:"templates" json:"templates"`
	Examples  struct {
		Sentiment     Sentiment     `yaml:"sentiment" json:"sentiment"`
		Summarization Summarization `yaml:"summarization" json:"summarization"`
	} `yaml:"examples" json:"examples"`
}

var load = sync.OnceValues(func() (*Catalog, error) {
	return Parse(raw)
})

// Load returns the embedded catalog, decoding it on first use.
func Load() (*Catalog, error) {
	return load()
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "catalog: parse")
	}
	if len(c.Templates) == 0 {
		return nil, errors.New("catalog: no templates")
	}
	return &c, nil
}
