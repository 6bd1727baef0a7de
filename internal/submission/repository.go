package submission

import (
	"context"
	"time"

	"formscore_backend/platform/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Submission is the persisted form of one processed form response.
// The _id is the generated submission UUID, reused as the feedback
// correlation token embedded in outbound links.
type Submission struct {
	ID          string                 `bson:"_id"`
	Answers     map[string]interface{} `bson:"answers"`
	Metadata    Metadata               `bson:"metadata"`
	CreatedAt   time.Time              `bson:"created_at"`
	EmailSent   bool                   `bson:"email_sent"`
	EmailSentAt *time.Time             `bson:"email_sent_at,omitempty"`
}

// FeedbackRecord is one recipient rating for a submission. Multiple records
// per submission are permitted; there is no dedup.
type FeedbackRecord struct {
	SubmissionID string    `bson:"submission_id"`
	Rating       string    `bson:"rating"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Repository persists submissions and feedback in MongoDB collections.
type Repository struct {
	submissions *mongo.Collection
	feedback    *mongo.Collection
}

// NewRepository binds the repository to the submissions and feedback collections.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		submissions: db.Collection("submissions"),
		feedback:    db.Collection("feedback"),
	}
}

// Create inserts a new submission document keyed by its identifier.
func (r *Repository) Create(ctx context.Context, sub Submission) error {
	if _, err := r.submissions.InsertOne(ctx, sub); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store submission", err).WithOp("submission.Create")
	}
	return nil
}

// MarkSent sets the email_sent flag and timestamp on an existing submission.
func (r *Repository) MarkSent(ctx context.Context, id string, at time.Time) error {
	result, err := r.submissions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email_sent": true, "email_sent_at": at}},
	)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update submission", err).WithOp("submission.MarkSent")
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("submission not found").WithOp("submission.MarkSent")
	}
	return nil
}

// AddFeedback appends a feedback document. The submission reference is not
// verified; anyone holding a feedback link can record an entry for that id.
func (r *Repository) AddFeedback(ctx context.Context, fb FeedbackRecord) error {
	if _, err := r.feedback.InsertOne(ctx, fb); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store feedback", err).WithOp("submission.AddFeedback")
	}
	return nil
}
