package submission

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"formscore_backend/internal/generator"
	"formscore_backend/platform/apperr"
	"formscore_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	created     []Submission
	marked      []string
	feedback    []FeedbackRecord
	createErr   error
	markErr     error
	feedbackErr error
}

func (f *fakeStore) Create(ctx context.Context, sub Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeStore) MarkSent(ctx context.Context, id string, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeStore) AddFeedback(ctx context.Context, fb FeedbackRecord) error {
	if f.feedbackErr != nil {
		return f.feedbackErr
	}
	f.feedback = append(f.feedback, fb)
	return nil
}

type fakeGenerator struct {
	result generator.Result
}

func (f fakeGenerator) Generate(ctx context.Context, answers map[string]interface{}) generator.Result {
	return f.result
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeSender) Send(ctx context.Context, toEmail, subject, htmlContent string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: toEmail, subject: subject, body: htmlContent})
	return nil
}

func testPayload() WebhookPayload {
	return WebhookPayload{
		FormID: "form-1",
		FormResponse: FormResponse{
			SubmittedAt: "2026-01-15T10:00:00Z",
			ResponseID:  "resp-1",
			Token:       "tok-1",
			Answers: []Answer{
				{Type: "email", Email: "a@b.com", Field: AnswerField{Title: "email"}},
				{Type: "choice", Choice: &ChoiceLabel{Label: "Often"}, Field: AnswerField{Title: "How often?"}},
			},
		},
	}
}

func newTestService(store *fakeStore, gen generator.ContentGenerator, sender *fakeSender) *Service {
	return NewService(store, gen, sender, "http://example.test", logger.New("development"))
}

func TestProcessWebhookHappyPath(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	svc := newTestService(store, fakeGenerator{result: generator.Result{HTML: "<p>score</p>"}}, sender)

	resp, err := svc.ProcessWebhook(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("ProcessWebhook returned error: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if _, err := uuid.Parse(resp.SubmissionID); err != nil {
		t.Errorf("submission id %q is not a UUID", resp.SubmissionID)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(store.created))
	}
	sub := store.created[0]
	if sub.ID != resp.SubmissionID {
		t.Error("stored submission id must match the response id")
	}
	if sub.EmailSent {
		t.Error("email_sent must be false at creation time")
	}
	if sub.Answers["How often?"] != "Often" {
		t.Errorf("stored answers = %v", sub.Answers)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.to != "a@b.com" {
		t.Errorf("recipient = %q", mail.to)
	}
	if !strings.Contains(mail.body, "<p>score</p>") {
		t.Error("email body must contain the generated fragment")
	}
	if !strings.Contains(mail.body, "http://example.test/feedback?rating=positive&amp;id="+resp.SubmissionID) {
		t.Error("email body must embed the feedback link with the submission id")
	}

	if len(store.marked) != 1 || store.marked[0] != resp.SubmissionID {
		t.Errorf("expected submission marked sent, got %v", store.marked)
	}
}

func TestProcessWebhookNoEmailAnswer(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	svc := newTestService(store, fakeGenerator{}, sender)

	payload := testPayload()
	payload.FormResponse.Answers = payload.FormResponse.Answers[1:] // drop the email answer

	_, err := svc.ProcessWebhook(context.Background(), payload)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
	if len(store.created) != 0 {
		t.Error("no submission may be stored when the recipient is missing")
	}
	if len(sender.sent) != 0 {
		t.Error("no email may be sent when the recipient is missing")
	}
}

func TestProcessWebhookGeneratorFallback(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	svc := newTestService(store, fakeGenerator{result: generator.Result{HTML: generator.FallbackMessage, Fallback: true}}, sender)

	resp, err := svc.ProcessWebhook(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("fallback content must not fail the request: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected email sent despite fallback")
	}
	if !strings.Contains(sender.sent[0].body, generator.FallbackMessage) {
		t.Error("email body must carry the fallback sentence")
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
}

func TestProcessWebhookSendFailureStillSucceeds(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{err: errors.New("provider down")}
	svc := newTestService(store, fakeGenerator{result: generator.Result{HTML: "<p>ok</p>"}}, sender)

	resp, err := svc.ProcessWebhook(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("send failure must not fail the request: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if len(store.marked) != 0 {
		t.Error("submission must not be marked sent after a send failure")
	}
}

func TestProcessWebhookStoreFailure(t *testing.T) {
	store := &fakeStore{createErr: apperr.Internal("insert failed")}
	sender := &fakeSender{}
	svc := newTestService(store, fakeGenerator{}, sender)

	_, err := svc.ProcessWebhook(context.Background(), testPayload())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("no email may be sent when the submission was not stored")
	}
}

func TestRecordFeedback(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, fakeGenerator{}, &fakeSender{})

	if err := svc.RecordFeedback(context.Background(), "sub-1", "positive"); err != nil {
		t.Fatalf("RecordFeedback returned error: %v", err)
	}
	if len(store.feedback) != 1 {
		t.Fatalf("expected exactly one feedback record, got %d", len(store.feedback))
	}
	fb := store.feedback[0]
	if fb.SubmissionID != "sub-1" || fb.Rating != "positive" {
		t.Errorf("feedback = %+v", fb)
	}
	if fb.CreatedAt.IsZero() {
		t.Error("feedback must carry a creation timestamp")
	}
}
