package submission

import (
	"context"
	"time"

	"formscore_backend/internal/email"
	"formscore_backend/internal/generator"
	"formscore_backend/platform/apperr"
	"formscore_backend/platform/logger"

	"github.com/google/uuid"
)

const emailSubject = "Thank you for your submission!"

// Store is the persistence interface the service depends on.
// Satisfied by *Repository.
type Store interface {
	Create(ctx context.Context, sub Submission) error
	MarkSent(ctx context.Context, id string, at time.Time) error
	AddFeedback(ctx context.Context, fb FeedbackRecord) error
}

// Service runs the submission pipeline: normalize, store, generate, send,
// mark sent. Feedback recording is handled independently.
type Service struct {
	store   Store
	gen     generator.ContentGenerator
	sender  email.Sender
	baseURL string
	log     *logger.Logger
}

// NewService creates a new submission service.
func NewService(store Store, gen generator.ContentGenerator, sender email.Sender, baseURL string, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		gen:     gen,
		sender:  sender,
		baseURL: baseURL,
		log:     log,
	}
}

// ProcessWebhook handles an inbound form submission end to end.
//
// The submission is stored before content generation, so a model or email
// failure never loses the response: generation falls back to a fixed
// sentence, and a send failure leaves email_sent false. Only a missing
// recipient address or a store failure fails the request.
func (s *Service) ProcessWebhook(ctx context.Context, payload WebhookPayload) (WebhookResponse, error) {
	answers, metadata, unsupported := Normalize(payload)
	for _, u := range unsupported {
		s.log.Debug("skipping unsupported answer type", "key", u.Key, "type", u.Type)
	}

	recipient, _ := answers[EmailKey].(string)
	if recipient == "" {
		return WebhookResponse{}, apperr.BadRequest("no email found")
	}

	id := uuid.New().String()

	sub := Submission{
		ID:        id,
		Answers:   answers,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
		EmailSent: false,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		s.log.StoreError("create submission", err)
		return WebhookResponse{}, err
	}

	result := s.gen.Generate(ctx, answers)
	if result.Fallback {
		s.log.Warn("content generation failed, sending fallback body", "submissionId", id)
	}

	body, err := email.RenderResultEmail(result.HTML, s.baseURL+"/feedback", id)
	if err != nil {
		// Template rendering only fails on programmer error; deliver the bare
		// fragment rather than dropping the email.
		s.log.Error("failed to render result email", "error", err, "submissionId", id)
		body = result.HTML
	}

	if err := s.sender.Send(ctx, recipient, emailSubject, body); err != nil {
		// The submission is stored; delivery failure is not a request failure.
		s.log.ExternalCallFailed("email", err)
		return WebhookResponse{Status: "success", SubmissionID: id}, nil
	}

	if err := s.store.MarkSent(ctx, id, time.Now().UTC()); err != nil {
		// Known inconsistency: sent but not marked. Logged, not corrected.
		s.log.StoreError("mark submission sent", err)
	}

	return WebhookResponse{Status: "success", SubmissionID: id}, nil
}

// RecordFeedback appends a feedback record for the given submission id.
// The id is not checked against stored submissions.
func (s *Service) RecordFeedback(ctx context.Context, submissionID, rating string) error {
	fb := FeedbackRecord{
		SubmissionID: submissionID,
		Rating:       rating,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.AddFeedback(ctx, fb); err != nil {
		s.log.StoreError("add feedback", err)
		return err
	}
	return nil
}
