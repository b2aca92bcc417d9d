package llm

// StreamChunk represents a single NDJSON line of a streaming generation response.
// Token lines carry Token; the final line has Done set and either Content (the full
// response) or Error.
type StreamChunk struct {
	Token *string `json:"token,omitempty"`
	Done  bool    `json:"done,omitempty"`

	// Final chunk only
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TokenChunk builds a token line.
func TokenChunk(token string) StreamChunk {
	return StreamChunk{Token: &token}
}
