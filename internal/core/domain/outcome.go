package domain

// RequestOutcome is the only thing the executor returns. A failed request
// resolves to a kind and message instead of an error crossing the boundary.
type RequestOutcome struct {
	OK      bool
	Body    string
	Kind    ErrorKind
	Message string
}

// Success wraps a response body in a successful outcome.
func Success(body string) RequestOutcome {
	return RequestOutcome{OK: true, Body: body}
}

// Failure wraps a classified failure in an outcome.
func Failure(kind ErrorKind, message string) RequestOutcome {
	return RequestOutcome{Kind: kind, Message: message}
}

// EnvelopePayload is the normalized result of decoding a response body.
// Raw always carries the original body so diagnostic paths can show it.
type EnvelopePayload struct {
	OK      bool
	Data    any
	Message string
	Raw     string
}

// PayloadOK wraps decoded data in a successful payload.
func PayloadOK(data any, raw string) EnvelopePayload {
	return EnvelopePayload{OK: true, Data: data, Raw: raw}
}

// PayloadErr wraps an application-level failure message in a payload.
func PayloadErr(message, raw string) EnvelopePayload {
	return EnvelopePayload{Message: message, Raw: raw}
}
