package submission

import (
	"net/http"

	"formscore_backend/internal/email"
	"formscore_backend/platform/httpkit"
	"formscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const ratingRule = "oneof=positive neutral negative"

// Handler handles the webhook and feedback HTTP endpoints.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new submission handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleWebhook processes an inbound form-submission notification.
// POST /webhook
func (h *Handler) HandleWebhook(c *gin.Context) {
	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	resp, err := h.service.ProcessWebhook(c.Request.Context(), payload)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleFeedback records a feedback link click and renders the confirmation page.
// GET /feedback?rating=<positive|neutral|negative>&id=<submission_id>
func (h *Handler) HandleFeedback(c *gin.Context) {
	rating := c.Query("rating")
	submissionID := c.Query("id")

	if rating == "" || submissionID == "" {
		c.String(http.StatusBadRequest, "Invalid feedback request")
		return
	}
	if err := h.val.Var(rating, ratingRule); err != nil {
		c.String(http.StatusBadRequest, "Invalid feedback request")
		return
	}

	if err := h.service.RecordFeedback(c.Request.Context(), submissionID, rating); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	page, err := email.RenderConfirmationPage(rating)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
