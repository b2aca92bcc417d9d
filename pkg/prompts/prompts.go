// Package prompts holds the fixed instruction texts sent to the model: the classifier
// and refine instructions, the per-family system and base prompts, and the per-framework
// boilerplate that seeds a generation with default project scaffolding.
package prompts

import (
	"strings"

	"github.com/papercomputeco/buildx/pkg/llm"
)

// ClassifierInstruction restricts the classifier's answer to one framework word.
const ClassifierInstruction = "Return either node or react or nextjs or manim based on what do you think this project should be. Only return a single word either 'node' or 'react' or 'nextjs' or 'manim'. Do not return anything extra.\nPS: Manim is a framework for creating animations."

// RefineInstruction asks the model to rewrite a rough idea into a buildable prompt.
const RefineInstruction = `You improve project ideas for an AI app builder.
Rewrite the user's idea into a single clear, specific prompt that describes what to build:
the main screens or scenes, the key features, and any visual style the user asked for.
Keep the user's intent, do not invent unrelated features, and keep it under 120 words.
Return only the rewritten prompt with no preamble, quotes or markdown.`

// Boilerplate returns the scaffolding prompt for a framework.
func Boilerplate(fw llm.Framework) string {
	switch fw {
	case llm.FrameworkReact:
		return reactBoilerplate
	case llm.FrameworkNext:
		return nextBoilerplate
	case llm.FrameworkManim:
		return manimBoilerplate
	default:
		return nodeBoilerplate
	}
}

// System returns the system prompt of a framework family.
func System(family llm.Family) string {
	if family == llm.FamilyAnimation {
		return animationSystemPrompt
	}
	return webSystemPrompt
}

// Base returns the base instruction block of a framework family.
func Base(family llm.Family) string {
	if family == llm.FamilyAnimation {
		return animationBasePrompt
	}
	return webBasePrompt
}

// StripIndents trims every line, drops leading blank space of the whole text and a
// single trailing line break.
func StripIndents(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.TrimLeft(strings.Join(lines, "\n"), " \t\r\n")
	out = strings.TrimSuffix(out, "\n")
	return strings.TrimSuffix(out, "\r")
}
