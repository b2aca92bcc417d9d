package llm

// DefaultTemperature is the sampling temperature used for code generation.
const DefaultTemperature float32 = 0.8

// Options contains model inference parameters.
type Options struct {
	Temperature *float32 `json:"temperature,omitempty"` // Creativity (0.0-2.0)
}
