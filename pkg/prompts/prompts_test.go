package prompts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/prompts"
)

var _ = Describe("StripIndents", func() {
	It("trims every line and the leading blank space", func() {
		in := "\n\n    first\n      second  \n\tthird\n"
		Expect(prompts.StripIndents(in)).To(Equal("first\nsecond\nthird"))
	})

	It("leaves flat text alone", func() {
		Expect(prompts.StripIndents("a\nb")).To(Equal("a\nb"))
	})
})

var _ = Describe("Prompt selection", func() {
	It("has a distinct boilerplate per framework", func() {
		seen := map[string]bool{}
		for _, fw := range []llm.Framework{llm.FrameworkNode, llm.FrameworkReact, llm.FrameworkNext, llm.FrameworkManim} {
			b := prompts.Boilerplate(fw)
			Expect(b).NotTo(BeEmpty())
			Expect(seen[b]).To(BeFalse())
			seen[b] = true
		}
	})

	It("keeps boilerplate indentation", func() {
		Expect(prompts.Boilerplate(llm.FrameworkManim)).To(ContainSubstring("\n    def construct(self):"))
	})

	It("separates web and animation families", func() {
		Expect(prompts.System(llm.FamilyWeb)).NotTo(Equal(prompts.System(llm.FamilyAnimation)))
		Expect(prompts.Base(llm.FamilyWeb)).NotTo(Equal(prompts.Base(llm.FamilyAnimation)))
		Expect(prompts.System(llm.FamilyAnimation)).To(ContainSubstring("Manim"))
	})

	It("restricts the classifier to the four words", func() {
		for _, w := range []string{"'node'", "'react'", "'nextjs'", "'manim'"} {
			Expect(prompts.ClassifierInstruction).To(ContainSubstring(w))
		}
	})
})
