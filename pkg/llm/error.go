// Package llm provides the shared representations of chat messages, frameworks and the
// request/response bodies exchanged over the buildx API.
package llm

// ErrorResponse represents an error returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
