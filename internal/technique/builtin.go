package technique

import (
	"strings"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
)

// builtins is the process-wide registry. It is populated once at package
// initialization and only read afterwards.
var builtins = newDefault()

// Default returns the built-in registry.
func Default() *Registry { return builtins }

func newDefault() *Registry {
	general := &familyTable{
		family:      General,
		description: "Generic task/input prompts; hosts the direct technique endpoints and comparison arms.",
	}
	sentiment := &familyTable{
		family:      Sentiment,
		description: "Classify text as positive, negative or neutral.",
		defaults: func(s prompt.Spec) prompt.Spec {
			if len(s.Examples) == 0 {
				s.Examples = prompt.DefaultSentimentExamples
			}
			return s
		},
	}
	summarization := &familyTable{
		family:      Summarization,
		description: "Summarize text to a short, medium or long length.",
		defaults: func(s prompt.Spec) prompt.Spec {
			if s.Summary.Length == "" {
				s.Summary.Length = prompt.DefaultLength
			}
			return s
		},
	}
	content := &familyTable{
		family:      Content,
		description: "Generate content of a given type for a target audience.",
		defaults: func(s prompt.Spec) prompt.Spec {
			if strings.TrimSpace(s.Content.Audience) == "" {
				s.Content.Audience = prompt.DefaultAudience
			}
			return s
		},
	}
	code := &familyTable{
		family:      Code,
		description: "Generate code in a named programming language.",
	}
	r := newRegistry(general, sentiment, summarization, content, code)

	general.
		add(Entry{
			ID:           ZeroShot,
			Description:  "Perform the task without examples.",
			Render:       func(s prompt.Spec) string { return prompt.ZeroShot(s.Task, s.Input) },
			Precondition: all(required("task", task), required("input_text", input)),
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           FewShot,
			Description:  "Guide the answer with labelled examples.",
			Render:       func(s prompt.Spec) string { return prompt.FewShot(s.Task, s.Input, s.Examples) },
			Precondition: all(required("task", task), required("input_text", input), hasExamples),
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           ChainOfThought,
			Description:  "Encourage explicit step-by-step reasoning.",
			Render:       func(s prompt.Spec) string { return prompt.ChainOfThought(s.Input) },
			Precondition: required("problem", input),
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           RoleBased,
			Description:  "Answer from a given persona, with optional context.",
			Render:       func(s prompt.Spec) string { return prompt.RoleBased(s.Role, s.Task, s.Context) },
			Precondition: all(required("role", role), required("task", task)),
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           TemplateBased,
			Description:  "Fill a structured analysis template.",
			Render:       func(s prompt.Spec) string { return prompt.Template(s.Input) },
			Precondition: required("text", input),
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           Advanced,
			Description:  "Combine persona, multi-step process, format and constraints.",
			Render:       func(s prompt.Spec) string { return prompt.Advanced(s.Input) },
			Precondition: required("text", input),
			MaxTokens:    DefaultMaxTokens,
		})

	text := required("text", input)
	sentiment.
		add(Entry{
			ID:           ZeroShot,
			Description:  "Classify directly.",
			Render:       func(s prompt.Spec) string { return prompt.SentimentZeroShot(s.Input) },
			Precondition: text,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           FewShot,
			Description:  "Classify after labelled examples.",
			Render:       func(s prompt.Spec) string { return prompt.SentimentFewShot(s.Input, s.Examples) },
			Precondition: all(text, hasExamples),
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           ChainOfThought,
			Description:  "Reason through emotional cues first.",
			Render:       func(s prompt.Spec) string { return prompt.SentimentChainOfThought(s.Input) },
			Precondition: text,
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           RoleBased,
			Description:  "Ask a sentiment specialist for a graded assessment.",
			Render:       func(s prompt.Spec) string { return prompt.SentimentRoleBased(s.Input) },
			Precondition: text,
			MaxTokens:    DefaultMaxTokens,
		})

	summary := all(text, validLength)
	summarization.
		add(Entry{
			ID:           ZeroShot,
			Description:  "Summarize to the requested length.",
			Render:       func(s prompt.Spec) string { return prompt.SummaryZeroShot(s.Input, s.Summary.Length) },
			Precondition: summary,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           Structured,
			Description:  "Main point, key details and conclusion.",
			Render:       func(s prompt.Spec) string { return prompt.SummaryStructured(s.Input, s.Summary.Length) },
			Precondition: summary,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           ChainOfThought,
			Description:  "Read in steps, then synthesize.",
			Render:       func(s prompt.Spec) string { return prompt.SummaryChainOfThought(s.Input, s.Summary.Length) },
			Precondition: summary,
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           RoleBased,
			Description:  "Summarize as a professional editor.",
			Render:       func(s prompt.Spec) string { return prompt.SummaryRoleBased(s.Input, s.Summary.Length) },
			Precondition: summary,
			MaxTokens:    DefaultMaxTokens,
		})

	topic := all(required("topic", task), required("content_type", contentType))
	content.
		add(Entry{
			ID:           ZeroShot,
			Description:  "Write the content directly.",
			Render:       func(s prompt.Spec) string { return prompt.ContentZeroShot(s.Task, s.Content) },
			Precondition: topic,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           ConstraintBased,
			Description:  "Write within explicit length, tone and structure limits.",
			Render:       func(s prompt.Spec) string { return prompt.ContentConstraintBased(s.Task, s.Content) },
			Precondition: topic,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           RoleBased,
			Description:  "Write as a specialist content creator.",
			Render:       func(s prompt.Spec) string { return prompt.ContentRoleBased(s.Task, s.Content) },
			Precondition: topic,
			MaxTokens:    DefaultMaxTokens,
		}).
		add(Entry{
			ID:           TemplateBased,
			Description:  "Fill a headline/hook/body/conclusion template.",
			Render:       func(s prompt.Spec) string { return prompt.ContentTemplateBased(s.Task, s.Content) },
			Precondition: topic,
			MaxTokens:    DefaultMaxTokens,
		})

	lang := all(required("task", task), required("language", language))
	code.
		add(Entry{
			ID:           ZeroShot,
			Description:  "Write the code directly.",
			Render:       func(s prompt.Spec) string { return prompt.CodeZeroShot(s.Task, s.Code) },
			Precondition: lang,
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           DetailedSpecification,
			Description:  "Write against an explicit requirements list.",
			Render:       func(s prompt.Spec) string { return prompt.CodeDetailedSpecification(s.Task, s.Code) },
			Precondition: lang,
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           StepByStep,
			Description:  "Plan in steps, then write the code.",
			Render:       func(s prompt.Spec) string { return prompt.CodeStepByStep(s.Task, s.Code) },
			Precondition: lang,
			MaxTokens:    ExtendedMaxTokens,
		}).
		add(Entry{
			ID:           RoleBased,
			Description:  "Write as a senior developer in the language.",
			Render:       func(s prompt.Spec) string { return prompt.CodeRoleBased(s.Task, s.Code) },
			Precondition: lang,
			MaxTokens:    ExtendedMaxTokens,
		})

	return r
}

func task(s prompt.Spec) string        { return s.Task }
func input(s prompt.Spec) string       { return s.Input }
func role(s prompt.Spec) string        { return s.Role }
func contentType(s prompt.Spec) string { return s.Content.Type }
func language(s prompt.Spec) string    { return s.Code.Language }

// required fails when get(spec) is empty or whitespace.
func required(field string, get func(prompt.Spec) string) Precondition {
	return func(s prompt.Spec) error {
		if strings.TrimSpace(get(s)) == "" {
			return apperr.Validation(field, "is required")
		}
		return nil
	}
}

func hasExamples(s prompt.Spec) error {
	if len(s.Examples) == 0 {
		return apperr.Validation("examples", "at least one example is required")
	}
	return nil
}

func validLength(s prompt.Spec) error {
	if s.Summary.Length.Phrase() == "" {
		return apperr.Validation("summary_length", "unknown length %q (must be short, medium or long)", s.Summary.Length)
	}
	return nil
}

// all runs ps in order and returns the first failure.
func all(ps ...Precondition) Precondition {
	return func(s prompt.Spec) error {
		for _, p := range ps {
			if err := p(s); err != nil {
				return err
			}
		}
		return nil
	}
}
