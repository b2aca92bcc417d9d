package editor

import "strings"

// PlainText is the language of files with an unknown extension.
const PlainText = "plaintext"

var languages = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"jsx":    "javascript",
	"tsx":    "typescript",
	"py":     "python",
	"java":   "java",
	"json":   "json",
	"xml":    "xml",
	"html":   "html",
	"css":    "css",
	"scss":   "scss",
	"less":   "less",
	"md":     "markdown",
	"yaml":   "yaml",
	"yml":    "yaml",
	"php":    "php",
	"c":      "c",
	"cpp":    "cpp",
	"cs":     "csharp",
	"go":     "go",
	"rs":     "rust",
	"rb":     "ruby",
	"sh":     "shell",
	"sql":    "sql",
	"swift":  "swift",
	"dart":   "dart",
	"vue":    "html",
	"svelte": "html",
}

// LanguageForExtension maps a file extension (without the dot) to an editor language.
func LanguageForExtension(ext string) string {
	if lang, ok := languages[strings.ToLower(ext)]; ok {
		return lang
	}
	return PlainText
}

// DetectLanguage returns the editor language of a file from the text after its last dot.
func DetectLanguage(fileName string) string {
	i := strings.LastIndexByte(fileName, '.')
	return LanguageForExtension(fileName[i+1:])
}
