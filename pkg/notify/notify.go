// Package notify prints short, levelled notifications for the CLI. Output is styled
// only when it goes to a terminal.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

var (
	infoStyle    = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func (l Level) prefix() string {
	switch l {
	case LevelSuccess:
		return "✓"
	case LevelWarning:
		return "!"
	case LevelError:
		return "✗"
	default:
		return "·"
	}
}

func (l Level) style() lipgloss.Style {
	switch l {
	case LevelSuccess:
		return successStyle
	case LevelWarning:
		return warningStyle
	case LevelError:
		return errorStyle
	default:
		return infoStyle
	}
}

// Notifier writes notifications to w.
type Notifier struct {
	w      io.Writer
	styled bool
}

// New creates a Notifier writing to w.
func New(w io.Writer) *Notifier {
	return &Notifier{w: w, styled: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Notify writes msg at level.
func (n *Notifier) Notify(level Level, msg string) {
	line := level.prefix() + " " + msg
	if n.styled {
		line = level.style().Render(line)
	}
	fmt.Fprintln(n.w, line)
}

func (n *Notifier) Info(format string, args ...any) {
	n.Notify(LevelInfo, fmt.Sprintf(format, args...))
}

func (n *Notifier) Success(format string, args ...any) {
	n.Notify(LevelSuccess, fmt.Sprintf(format, args...))
}

func (n *Notifier) Warning(format string, args ...any) {
	n.Notify(LevelWarning, fmt.Sprintf(format, args...))
}

func (n *Notifier) Error(format string, args ...any) {
	n.Notify(LevelError, fmt.Sprintf(format, args...))
}
