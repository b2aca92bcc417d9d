package editor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/buildx/pkg/editor"
)

var _ = Describe("Language detection", func() {
	DescribeTable("LanguageForExtension",
		func(ext, want string) {
			Expect(editor.LanguageForExtension(ext)).To(Equal(want))
		},
		Entry("tsx is typed markup", "tsx", "typescript"),
		Entry("py is python", "py", "python"),
		Entry("unknown is plain text", "xyz", editor.PlainText),
		Entry("upper case", "JSON", "json"),
		Entry("svelte renders as html", "svelte", "html"),
		Entry("yml", "yml", "yaml"),
	)

	DescribeTable("DetectLanguage",
		func(name, want string) {
			Expect(editor.DetectLanguage(name)).To(Equal(want))
		},
		Entry("nested path", "src/components/Button.tsx", "typescript"),
		Entry("multiple dots", "vite.config.ts", "typescript"),
		Entry("no extension", "Makefile", editor.PlainText),
		Entry("manim scene", "main.py", "python"),
	)
})
