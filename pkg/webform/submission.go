package webform

import "strings"

// IDKey is the payload member that names the target definition.
const IDKey = "webform_id"

// Submission is the envelope the CMS validation and persistence routines
// expect. EntityType and EntityID stay nil for submissions that are not
// attached to a source entity.
type Submission struct {
	WebformID  string         `json:"webform_id"`
	EntityType *string        `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	InDraft    bool           `json:"in_draft"`
	URI        string         `json:"uri"`
	Data       map[string]any `json:"data"`
}

// NewSubmission wraps data for the definition id. The webform_id member is
// never forwarded as field data.
func NewSubmission(id string, data map[string]any) Submission {
	id = strings.TrimSpace(id)
	values := make(map[string]any, len(data))
	for key, value := range data {
		if key == IDKey {
			continue
		}
		values[key] = value
	}
	return Submission{
		WebformID: id,
		InDraft:   false,
		URI:       "/webform/" + id + "/api",
		Data:      values,
	}
}

// Errors maps element keys to validation messages. An empty key carries a
// form-level message.
type Errors map[string]string

// Empty reports whether no validation message was recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}
