package codegen

import (
	"github.com/papercomputeco/buildx/pkg/llm"
)

// Conversation is the ordered message history of one generation session. It records
// whether the system prompt has been inserted so that repeated generations on the same
// history never add a second one.
type Conversation struct {
	messages []llm.Message
	seeded   bool
}

// NewConversation wraps an existing history. A history that already carries a system
// message starts seeded.
func NewConversation(history []llm.Message) *Conversation {
	c := &Conversation{
		messages: append([]llm.Message(nil), history...),
	}
	for _, m := range history {
		if m.Role == llm.RoleSystem {
			c.seeded = true
			break
		}
	}
	return c
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []llm.Message {
	return append([]llm.Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Seeded reports whether the system prompt has been inserted.
func (c *Conversation) Seeded() bool {
	return c.seeded
}

// Append adds a message at the end of the history.
func (c *Conversation) Append(m llm.Message) {
	c.messages = append(c.messages, m)
}

func (c *Conversation) prepend(m llm.Message) {
	c.messages = append([]llm.Message{m}, c.messages...)
}
