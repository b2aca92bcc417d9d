package llm

// PromptRequest is the body of the classification and refine endpoints.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// CreateProjectRequest asks the workspace service for a new project.
type CreateProjectRequest struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework"`
}

// ChatRequest is a streaming code generation request.
type ChatRequest struct {
	Messages  []Message `json:"messages"`  // Conversation history
	Prompt    string    `json:"prompt"`    // The new user turn
	Framework string    `json:"framework"` // REACT, NEXT, MANIM or NODE
	Model     string    `json:"model,omitempty"`
}

// SetModelRequest selects the active model for the calling user.
type SetModelRequest struct {
	ModelID string `json:"modelId"`
}
