package provider

import (
	"errors"

	openaiapi "github.com/sashabaranov/go-openai"
)

// Message extracts the human readable message of an upstream error. It returns "" when
// the error carries none.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *openaiapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var reqErr *openaiapi.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Err != nil {
			return reqErr.Err.Error()
		}
		return ""
	}

	return err.Error()
}
