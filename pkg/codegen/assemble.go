package codegen

import (
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/prompts"
)

// Assemble prepares conv for a generation of prompt under framework fw. The history ends
// up as:
//
//	base prompt, [system prompt], boilerplate, ...previous history, prompt
//
// The boilerplate and base prompt are prepended on every call; the system prompt only the
// first time.
func Assemble(conv *Conversation, prompt string, fw llm.Framework) {
	family := fw.Family()

	conv.prepend(llm.TextMessage(llm.RoleUser, prompts.Boilerplate(fw)))

	if !conv.seeded {
		conv.prepend(llm.TextMessage(llm.RoleSystem, prompts.StripIndents(prompts.System(family))))
		conv.seeded = true
	}

	conv.prepend(llm.TextMessage(llm.RoleUser, prompts.StripIndents(prompts.Base(family))))

	conv.Append(llm.TextMessage(llm.RoleUser, prompt))
}
