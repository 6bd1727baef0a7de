package submission

import "fmt"

// EmailKey is the reserved answer key that carries the recipient address.
const EmailKey = "email"

// Metadata is the per-response metadata extracted alongside the answers.
type Metadata struct {
	SubmittedAt string `bson:"submitted_at" json:"submitted_at"`
	FormID      string `bson:"form_id" json:"form_id"`
	ResponseID  string `bson:"response_id" json:"response_id"`
	Token       string `bson:"token" json:"token"`
}

// UnsupportedAnswer reports an answer whose type tag the normalizer does not
// handle. These are surfaced to the caller instead of being silently dropped.
type UnsupportedAnswer struct {
	Key  string
	Type string
}

// Normalize flattens the payload's answer list into a flat mapping keyed by
// question title. Values are typed per answer kind: text and email answers
// map to strings, choice answers to the selected label, choices answers to
// the ordered label list, number answers to float64. The email answer is
// additionally captured under the reserved EmailKey.
func Normalize(payload WebhookPayload) (map[string]interface{}, Metadata, []UnsupportedAnswer) {
	answers := make(map[string]interface{}, len(payload.FormResponse.Answers))
	var unsupported []UnsupportedAnswer

	for _, answer := range payload.FormResponse.Answers {
		key := answerKey(answer.Field)

		switch answer.Type {
		case "text":
			answers[key] = answer.Text
		case "email":
			answers[EmailKey] = answer.Email
		case "choice":
			if answer.Choice != nil {
				answers[key] = answer.Choice.Label
			}
		case "choices":
			labels := make([]string, 0, len(answer.Choices))
			for _, c := range answer.Choices {
				labels = append(labels, c.Label)
			}
			answers[key] = labels
		case "number":
			if answer.Number != nil {
				answers[key] = *answer.Number
			}
		default:
			unsupported = append(unsupported, UnsupportedAnswer{Key: key, Type: answer.Type})
		}
	}

	metadata := Metadata{
		SubmittedAt: payload.FormResponse.SubmittedAt,
		FormID:      payload.FormID,
		ResponseID:  payload.FormResponse.ResponseID,
		Token:       payload.FormResponse.Token,
	}

	return answers, metadata, unsupported
}

func answerKey(field AnswerField) string {
	if field.Title != "" {
		return field.Title
	}
	if field.ID != "" {
		return fmt.Sprintf("field_%s", field.ID)
	}
	return "field_unknown"
}
