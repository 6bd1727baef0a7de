package submission

// WebhookPayload is the form provider's webhook body.
type WebhookPayload struct {
	EventID      string       `json:"event_id"`
	EventType    string       `json:"event_type"`
	FormID       string       `json:"form_id"`
	FormResponse FormResponse `json:"form_response"`
}

// FormResponse carries the answers and the response metadata.
type FormResponse struct {
	SubmittedAt string   `json:"submitted_at"`
	ResponseID  string   `json:"response_id"`
	Token       string   `json:"token"`
	Answers     []Answer `json:"answers"`
}

// Answer is one heterogeneous answer object. Which value field is populated
// depends on the Type tag.
type Answer struct {
	Type    string        `json:"type"`
	Text    string        `json:"text,omitempty"`
	Email   string        `json:"email,omitempty"`
	Number  *float64      `json:"number,omitempty"`
	Choice  *ChoiceLabel  `json:"choice,omitempty"`
	Choices []ChoiceLabel `json:"choices,omitempty"`
	Field   AnswerField   `json:"field"`
}

// ChoiceLabel is a selected option within a choice/choices answer.
type ChoiceLabel struct {
	Label string `json:"label"`
}

// AnswerField identifies the question an answer belongs to.
type AnswerField struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// WebhookResponse is returned to the form provider on success.
type WebhookResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
}
