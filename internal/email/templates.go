package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// resultEmailData fills the outer wrapper around the generated content.
// SubmissionID is the feedback correlation token embedded in all three links.
type resultEmailData struct {
	Content      template.HTML
	FeedbackURL  string
	SubmissionID string
}

type confirmationData struct {
	Symbol string
}

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderResultEmail wraps the generated HTML fragment in the fixed outer
// template containing the three feedback anchors.
func RenderResultEmail(content, feedbackURL, submissionID string) (string, error) {
	return render("result_email.html", resultEmailData{
		Content:      template.HTML(content),
		FeedbackURL:  feedbackURL,
		SubmissionID: submissionID,
	})
}

// RenderConfirmationPage renders the static thank-you page shown after a
// feedback click, reflecting the chosen rating's symbol.
func RenderConfirmationPage(rating string) (string, error) {
	return render("feedback_confirmation.html", confirmationData{
		Symbol: RatingSymbol(rating),
	})
}

// RatingSymbol maps a rating value to its display emoji.
func RatingSymbol(rating string) string {
	switch rating {
	case "positive":
		return "\U0001F60A" // 😊
	case "neutral":
		return "\U0001F610" // 😐
	default:
		return "☹️" // ☹️
	}
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
