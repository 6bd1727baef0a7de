// Package submission provides the form-submission bounded context: webhook
// intake, answer normalization, persistence, result-email dispatch, and
// feedback recording.
package submission

import (
	"formscore_backend/internal/config"
	"formscore_backend/internal/email"
	"formscore_backend/internal/generator"
	"formscore_backend/platform/httpkit"
	"formscore_backend/platform/logger"
	"formscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

// Module encapsulates the submission context's setup and route registration.
type Module struct {
	handler         *Handler
	feedbackLimiter *httpkit.IPRateLimiter
	cfg             *config.Config
}

// NewModule creates and initializes the submission module with all its dependencies.
func NewModule(db *mongo.Database, gen generator.ContentGenerator, sender email.Sender, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(db)
	service := NewService(repo, gen, sender, cfg.BaseURL, log)
	handler := NewHandler(service, val)

	return &Module{
		handler:         handler,
		feedbackLimiter: httpkit.NewIPRateLimiter(rate.Limit(cfg.FeedbackRate), cfg.FeedbackBurst, log),
		cfg:             cfg,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "submission"
}

// RegisterRoutes mounts the module's routes on the engine.
func (m *Module) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/webhook",
		SignatureVerification(m.cfg.WebhookSecret, m.cfg.WebhookVerify),
		m.handler.HandleWebhook,
	)
	engine.GET("/feedback",
		m.feedbackLimiter.RateLimit(),
		m.handler.HandleFeedback,
	)
}
