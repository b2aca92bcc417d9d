package llm

import (
	"fmt"
	"strings"
)

// Framework is the target project type of a generation.
type Framework string

const (
	FrameworkNode  Framework = "NODE"
	FrameworkReact Framework = "REACT"
	FrameworkNext  Framework = "NEXT"
	FrameworkManim Framework = "MANIM"
)

// Family groups frameworks that share system and base prompts.
type Family string

const (
	FamilyWeb       Family = "web"
	FamilyAnimation Family = "animation"
)

// classifierTokens maps the words the classifier may answer with to frameworks.
var classifierTokens = map[string]Framework{
	"node":   FrameworkNode,
	"react":  FrameworkReact,
	"nextjs": FrameworkNext,
	"manim":  FrameworkManim,
}

// ParseFramework maps a classifier token ("node", "react", "nextjs", "manim") to a
// Framework. Surrounding whitespace, quotes and a trailing period are ignored.
func ParseFramework(token string) (Framework, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.Trim(t, "'\"`.")
	fw, ok := classifierTokens[t]
	return fw, ok
}

// ParseFrameworkTag accepts either the tag form ("REACT") or a classifier token ("react").
func ParseFrameworkTag(s string) (Framework, error) {
	switch Framework(strings.ToUpper(strings.TrimSpace(s))) {
	case FrameworkNode:
		return FrameworkNode, nil
	case FrameworkReact:
		return FrameworkReact, nil
	case FrameworkNext:
		return FrameworkNext, nil
	case FrameworkManim:
		return FrameworkManim, nil
	}
	if fw, ok := ParseFramework(s); ok {
		return fw, nil
	}
	return "", fmt.Errorf("unknown framework %q", s)
}

// Token returns the classifier word for the framework.
func (f Framework) Token() string {
	switch f {
	case FrameworkReact:
		return "react"
	case FrameworkNext:
		return "nextjs"
	case FrameworkManim:
		return "manim"
	default:
		return "node"
	}
}

// Family returns the prompt family of the framework. NODE falls into the web family.
func (f Framework) Family() Family {
	if f == FrameworkManim {
		return FamilyAnimation
	}
	return FamilyWeb
}

// EditorRoute returns the client route that opens a project of this framework.
func (f Framework) EditorRoute(projectID string) string {
	if f == FrameworkManim {
		return "/video-editor/" + projectID
	}
	return "/editor/" + projectID
}
