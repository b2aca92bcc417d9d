package codegen_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/codegen"
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/provider"
)

var _ = Describe("Generator", func() {
	var (
		ctx    context.Context
		fake   *fakeProvider
		gen    *codegen.Generator
		conv   *codegen.Conversation
		tokens []string
		sink   codegen.Sink
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = &fakeProvider{}
		gen = codegen.NewGenerator(fake, zap.NewNop())
		conv = codegen.NewConversation([]llm.Message{llm.TextMessage(llm.RoleUser, "Build a todo app")})
		tokens = nil
		sink = func(token string) { tokens = append(tokens, token) }
	})

	Context("when the stream succeeds", func() {
		BeforeEach(func() {
			fake.deltas = []provider.Delta{
				{},
				content("<boltArtifact"),
				content(""),
				content(` id="todo">`),
				{},
				content("</boltArtifact>"),
			}
		})

		It("forwards every present delta in order and returns their concatenation", func() {
			out, err := gen.Generate(ctx, conv, "make it blue", llm.FrameworkReact, "gpt-4o", sink)
			Expect(err).NotTo(HaveOccurred())

			Expect(tokens).To(Equal([]string{"<boltArtifact", "", ` id="todo">`, "</boltArtifact>"}))
			Expect(out).To(Equal(strings.Join(tokens, "")))
		})

		It("sends the assembled history with temperature 0.8 to the selected model", func() {
			_, err := gen.Generate(ctx, conv, "make it blue", llm.FrameworkReact, "gpt-4o", sink)
			Expect(err).NotTo(HaveOccurred())

			Expect(fake.requests).To(HaveLen(1))
			req := fake.requests[0]
			Expect(req.Model).To(Equal("gpt-4o"))
			Expect(req.Options.Temperature).NotTo(BeNil())
			Expect(*req.Options.Temperature).To(Equal(float32(0.8)))
			Expect(req.Messages).To(HaveLen(5))
			Expect(req.Messages[4].Text()).To(Equal("make it blue"))
		})

		It("appends the assistant reply to the conversation", func() {
			out, _ := gen.Generate(ctx, conv, "make it blue", llm.FrameworkReact, "gpt-4o", sink)

			msgs := conv.Messages()
			last := msgs[len(msgs)-1]
			Expect(last.Role).To(Equal(llm.RoleAssistant))
			Expect(last.Text()).To(Equal(out))
		})
	})

	Context("when the stream fails midway", func() {
		BeforeEach(func() {
			fake.deltas = []provider.Delta{content("partial")}
			fake.recvErr = errors.New("connection reset")
		})

		It("reports the failure through the sink, the history and the result", func() {
			before := conv.Len()

			out, err := gen.Generate(ctx, conv, "p", llm.FrameworkNext, "m", sink)

			Expect(errors.Is(err, codegen.ErrGenerationFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("connection reset"))
			Expect(out).To(Equal(codegen.ErrorText))

			Expect(tokens).To(Equal([]string{"partial", codegen.ErrorText}))

			msgs := conv.Messages()
			// base + system + boilerplate + user turn + error entry
			Expect(msgs).To(HaveLen(before + 5))
			last := msgs[len(msgs)-1]
			Expect(last.Role).To(Equal(llm.RoleAssistant))
			Expect(last.Text()).To(Equal(codegen.ErrorText))
			Expect(countRole(msgs, llm.RoleAssistant)).To(Equal(1))
		})
	})

	Context("when the stream cannot start", func() {
		It("sends exactly one error token", func() {
			fake.streamErr = errors.New("401 unauthorized")

			out, err := gen.Generate(ctx, conv, "p", llm.FrameworkManim, "m", sink)

			Expect(err).To(MatchError(codegen.ErrGenerationFailed))
			Expect(out).To(Equal(codegen.ErrorText))
			Expect(tokens).To(Equal([]string{codegen.ErrorText}))
		})
	})

	Context("when the context is cancelled", func() {
		It("stops and reports a failure", func() {
			fake.deltas = []provider.Delta{content("never")}
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			out, err := gen.Generate(cctx, conv, "p", llm.FrameworkReact, "m", sink)

			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(errors.Is(err, codegen.ErrGenerationFailed)).To(BeTrue())
			Expect(out).To(Equal(codegen.ErrorText))
			Expect(tokens).To(Equal([]string{codegen.ErrorText}))
		})
	})

	It("keeps a single system message across calls on the same conversation", func() {
		fake.deltas = []provider.Delta{content("a")}
		_, err := gen.Generate(ctx, conv, "one", llm.FrameworkReact, "m", sink)
		Expect(err).NotTo(HaveOccurred())

		fake.deltas = []provider.Delta{content("b")}
		_, err = gen.Generate(ctx, conv, "two", llm.FrameworkReact, "m", sink)
		Expect(err).NotTo(HaveOccurred())

		Expect(countRole(conv.Messages(), llm.RoleSystem)).To(Equal(1))
	})
})
