package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/response"
	"github.com/wonwomen07/prompt-engineering/internal/metrics"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/service"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

// PromptService is the subset of service.Service the prompt endpoints use.
type PromptService interface {
	Prompt(ctx context.Context, req service.Request) (service.Response, error)
	Compare(ctx context.Context, req compare.Request) (compare.Outcome, error)
}

// specBuilder maps a decoded request onto the fields its family reads.
type specBuilder func(r *schema.PromptRequest) prompt.Spec

type PromptHandler struct {
	svc     PromptService
	metrics metrics.Collector
}

func NewPromptHandler(svc PromptService, m metrics.Collector) *PromptHandler {
	if m == nil {
		m = metrics.NewNoopCollector()
	}
	return &PromptHandler{svc: svc, metrics: m}
}

func (h *PromptHandler) ZeroShot(c *gin.Context) {
	h.handle(c, technique.General, technique.ZeroShot, func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Task: r.Task, Input: r.InputText}
	})
}

func (h *PromptHandler) FewShot(c *gin.Context) {
	h.handle(c, technique.General, technique.FewShot, func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Task: r.Task, Input: r.InputText, Examples: r.Examples}
	})
}

func (h *PromptHandler) ChainOfThought(c *gin.Context) {
	h.handle(c, technique.General, technique.ChainOfThought, func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Input: r.Problem}
	})
}

func (h *PromptHandler) RoleBased(c *gin.Context) {
	h.handle(c, technique.General, technique.RoleBased, func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Role: r.Role, Task: r.Task, Context: r.Context}
	})
}

func (h *PromptHandler) TemplatePrompt(c *gin.Context) {
	h.handle(c, technique.General, technique.TemplateBased, textSpec)
}

func (h *PromptHandler) AdvancedPrompt(c *gin.Context) {
	h.handle(c, technique.General, technique.Advanced, textSpec)
}

// SentimentAnalysis, TextSummarization, ContentGeneration and CodeGeneration
// honour the request's technique field.

func (h *PromptHandler) SentimentAnalysis(c *gin.Context) {
	h.handle(c, technique.Sentiment, "", func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Input: r.Text, Examples: r.Examples}
	})
}

func (h *PromptHandler) TextSummarization(c *gin.Context) {
	h.handle(c, technique.Summarization, "", func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{
			Input:   r.Text,
			Summary: prompt.SummaryOptions{Length: prompt.Length(strings.TrimSpace(r.SummaryLength))},
		}
	})
}

func (h *PromptHandler) ContentGeneration(c *gin.Context) {
	h.handle(c, technique.Content, "", func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{
			Task:    r.Topic,
			Content: prompt.ContentOptions{Type: r.ContentType, Audience: r.TargetAudience},
		}
	})
}

func (h *PromptHandler) CodeGeneration(c *gin.Context) {
	h.handle(c, technique.Code, "", func(r *schema.PromptRequest) prompt.Spec {
		return prompt.Spec{Task: r.Task, Code: prompt.CodeOptions{Language: r.Language}}
	})
}

// CompareTechniques runs the general techniques side by side.
func (h *PromptHandler) CompareTechniques(c *gin.Context) {
	var req schema.CompareRequest
	if err := bindRequest(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	ctx := c.Request.Context()
	out, err := h.svc.Compare(ctx, compare.Request{
		Task:        req.Task,
		Input:       req.InputText,
		Examples:    req.Examples,
		Role:        req.Role,
		Temperature: req.Temperature,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	for _, e := range out.Entries {
		h.metrics.RecordComparisonEntry(ctx, string(e.Technique), e.OK())
	}
	response.RespondOK(c, schema.NewComparisonResponse(out))
}

func textSpec(r *schema.PromptRequest) prompt.Spec {
	return prompt.Spec{Input: r.Text}
}

// handle binds the request and calls the service. A non-empty fixed
// technique overrides whatever the caller sent.
func (h *PromptHandler) handle(c *gin.Context, family technique.Family, fixed technique.Technique, build specBuilder) {
	var req schema.PromptRequest
	if err := bindRequest(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	requested := strings.TrimSpace(req.Technique)
	if fixed != "" {
		requested = string(fixed)
	}
	res, err := h.svc.Prompt(c.Request.Context(), service.Request{
		Family:      family,
		Technique:   requested,
		Spec:        build(&req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, schema.NewPromptResponse(res))
}
