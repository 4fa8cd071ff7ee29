// Package httpapi exposes the prompt service over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/wonwomen07/prompt-engineering/internal/httpapi/handlers"
	httpMW "github.com/wonwomen07/prompt-engineering/internal/httpapi/middleware"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
	"github.com/wonwomen07/prompt-engineering/internal/metrics"
)

type RouterConfig struct {
	Logger         *logger.Logger
	Metrics        metrics.Collector
	AllowedOrigins []string
	RateLimiter    *httpMW.RateLimiter
	// ServiceName enables otelgin spans when set.
	ServiceName string

	PromptHandler  *httpH.PromptHandler
	CatalogHandler *httpH.CatalogHandler
	UsageHandler   *httpH.UsageHandler
	HealthHandler  *httpH.HealthHandler
	// MetricsHandler serves the Prometheus exposition.
	MetricsHandler http.Handler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root(r.Routes))
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	// Catalog
	if cfg.CatalogHandler != nil {
		r.GET("/techniques", cfg.CatalogHandler.Techniques)
		r.GET("/templates", cfg.CatalogHandler.Templates)
		r.GET("/examples/sentiment-analysis", cfg.CatalogHandler.SentimentExamples)
		r.GET("/examples/text-summarization", cfg.CatalogHandler.SummarizationExamples)
	}

	// Usage
	if cfg.UsageHandler != nil {
		r.GET("/usage", cfg.UsageHandler.Usage)
	}

	// Model calls
	calls := r.Group("/")
	{
		if cfg.RateLimiter != nil {
			calls.Use(cfg.RateLimiter.Middleware())
		}
		if cfg.PromptHandler != nil {
			calls.POST("/zero-shot", cfg.PromptHandler.ZeroShot)
			calls.POST("/few-shot", cfg.PromptHandler.FewShot)
			calls.POST("/chain-of-thought", cfg.PromptHandler.ChainOfThought)
			calls.POST("/role-based", cfg.PromptHandler.RoleBased)
			calls.POST("/template-prompt", cfg.PromptHandler.TemplatePrompt)
			calls.POST("/advanced-prompt", cfg.PromptHandler.AdvancedPrompt)
			calls.POST("/compare-techniques", cfg.PromptHandler.CompareTechniques)

			calls.POST("/sentiment-analysis", cfg.PromptHandler.SentimentAnalysis)
			calls.POST("/text-summarization", cfg.PromptHandler.TextSummarization)
			calls.POST("/content-generation", cfg.PromptHandler.ContentGeneration)
			calls.POST("/code-generation", cfg.PromptHandler.CodeGeneration)
		}
	}

	return r
}
