package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/catalog"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/response"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

// CatalogHandler serves the static listings: registered techniques, prompt
// templates and sample requests.
type CatalogHandler struct {
	registry *technique.Registry
	load     func() (*catalog.Catalog, error)
}

func NewCatalogHandler(registry *technique.Registry) *CatalogHandler {
	if registry == nil {
		registry = technique.Default()
	}
	return &CatalogHandler{registry: registry, load: catalog.Load}
}

func (h *CatalogHandler) Techniques(c *gin.Context) {
	response.RespondOK(c, schema.NewFamilyInfos(h.registry))
}

func (h *CatalogHandler) Templates(c *gin.Context) {
	cat, err := h.load()
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": cat.Templates})
}

func (h *CatalogHandler) SentimentExamples(c *gin.Context) {
	cat, err := h.load()
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, cat.Examples.Sentiment)
}

func (h *CatalogHandler) SummarizationExamples(c *gin.Context) {
	cat, err := h.load()
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, cat.Examples.Summarization)
}
