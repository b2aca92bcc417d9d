package llm

// TemplateResponse carries the classified framework token.
type TemplateResponse struct {
	Framework string `json:"framework,omitempty"`
	Message   string `json:"message,omitempty"`
}

// RefineResponse carries a rewritten prompt.
type RefineResponse struct {
	RefinedPrompt string `json:"refinedPrompt"`
}

// CreateProjectResponse carries the id of a newly created project.
type CreateProjectResponse struct {
	ID string `json:"id"`
}

// ModelInfo describes a selectable model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// UserModelResponse carries the active model of a user.
type UserModelResponse struct {
	ID string `json:"id"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}
