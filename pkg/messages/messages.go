// Package messages holds the fixed, user-facing error strings returned by the
// HTTP surface. Strings are resolved statically; there is no locale state.
package messages

// Key identifies a message in the table.
type Key string

const (
	MissingIdentifier Key = "webform.missing_identifier"
	CannotLoad        Key = "webform.cannot_load"
	InvalidIdentifier Key = "webform.invalid_identifier"
	Closed            Key = "webform.closed"
	MalformedBody     Key = "request.malformed_body"
	BackendFailure    Key = "backend.failure"
)

var table = map[Key]string{
	MissingIdentifier: "Webform ID wasn't provided",
	CannotLoad:        "Can't load webform.",
	InvalidIdentifier: "Invalid webform_id value.",
	Closed:            "This webform is closed to new submissions.",
	MalformedBody:     "Request body must be a JSON object.",
	BackendFailure:    "The form backend could not process the request.",
}

// Text returns the message for key, falling back to the key itself so a
// missing entry is visible instead of empty.
func Text(key Key) string {
	if msg, ok := table[key]; ok {
		return msg
	}
	return string(key)
}

// Keys lists every registered key.
func Keys() []Key {
	return []Key{
		MissingIdentifier,
		CannotLoad,
		InvalidIdentifier,
		Closed,
		MalformedBody,
		BackendFailure,
	}
}
