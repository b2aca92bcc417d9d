package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"go/format"
)

// Formatter is the "format document" action run on a file before it is saved.
type Formatter interface {
	Format(ctx context.Context, language, content string) (string, error)
}

// FormatterFunc adapts a function to a Formatter.
type FormatterFunc func(ctx context.Context, language, content string) (string, error)

// Format implements Formatter.
func (f FormatterFunc) Format(ctx context.Context, language, content string) (string, error) {
	return f(ctx, language, content)
}

// DefaultFormatter formats Go with gofmt rules and JSON with two-space indentation.
// Content that does not parse, and every other language, is returned unchanged.
var DefaultFormatter = FormatterFunc(func(ctx context.Context, language, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch language {
	case "go":
		out, err := format.Source([]byte(content))
		if err != nil {
			return content, nil
		}
		return string(out), nil
	case "json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(content), "", "  "); err != nil {
			return content, nil
		}
		return buf.String(), nil
	default:
		return content, nil
	}
})
