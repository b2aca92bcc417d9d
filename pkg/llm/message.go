package llm

import "strings"

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType discriminates the content parts of a message.
type PartType string

const (
	PartText     PartType = "text"
	PartImageURL PartType = "image_url"
)

// ImageURL holds a data-URL encoded image.
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart is either a text part or an image part.
type ContentPart struct {
	Type     PartType  `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// Message represents a single message in a conversation.
type Message struct {
	Role    Role          `json:"role"`    // "system", "user", "assistant"
	Content []ContentPart `json:"content"` // Never empty
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

// ImagePart builds an image content part from a data URL.
func ImagePart(dataURL string) ContentPart {
	return ContentPart{Type: PartImageURL, ImageURL: &ImageURL{URL: dataURL}}
}

// TextMessage builds a text-only message.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Content: []ContentPart{TextPart(text)}}
}

// ImageMessage builds a multimodal user message carrying the prompt and an image.
func ImageMessage(text, dataURL string) Message {
	return Message{
		Role:    RoleUser,
		Content: []ContentPart{TextPart(text), ImagePart(dataURL)},
	}
}

// Text concatenates the text parts of the message.
func (m Message) Text() string {
	var b strings.Builder
	for _, part := range m.Content {
		if part.Type == PartText {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// HasImage reports whether any part of the message is an image.
func (m Message) HasImage() bool {
	for _, part := range m.Content {
		if part.Type == PartImageURL {
			return true
		}
	}
	return false
}
