package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/provider"
)

var _ = Describe("OpenAI", func() {
	var (
		ctx      context.Context
		server   *httptest.Server
		handler  http.HandlerFunc
		received map[string]any
		p        *provider.OpenAI
	)

	BeforeEach(func() {
		ctx = context.Background()
		received = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			handler(w, r)
		}))
		p = provider.NewOpenAI(provider.Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	})

	AfterEach(func() {
		server.Close()
	})

	decodeBody := func(r *http.Request) {
		body, err := io.ReadAll(r.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(body, &received)).To(Succeed())
	}

	Describe("Complete", func() {
		It("returns the content of the first choice", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(HaveSuffix("/chat/completions"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer test-key"))
				decodeBody(r)
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"react"}}]}`)
			}

			out, err := p.Complete(ctx, provider.CompletionRequest{
				Model:    "gemini-1.5-flash",
				Messages: []llm.Message{llm.TextMessage(llm.RoleUser, "Build a todo app")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("react"))
			Expect(received["model"]).To(Equal("gemini-1.5-flash"))
		})

		It("sends image messages as multi-part content", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				decodeBody(r)
				fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
			}

			_, err := p.Complete(ctx, provider.CompletionRequest{
				Model:    "m",
				Messages: []llm.Message{llm.ImageMessage("look", "data:image/png;base64,AAAA")},
			})
			Expect(err).NotTo(HaveOccurred())

			messages := received["messages"].([]any)
			content := messages[0].(map[string]any)["content"].([]any)
			Expect(content).To(HaveLen(2))
			Expect(content[1].(map[string]any)["type"]).To(Equal("image_url"))
		})

		It("returns ErrEmptyResponse when no choice comes back", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			}

			_, err := p.Complete(ctx, provider.CompletionRequest{Model: "m"})
			Expect(errors.Is(err, provider.ErrEmptyResponse)).To(BeTrue())
		})

		It("surfaces upstream errors", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error":{"message":"quota exceeded","type":"rate_limit"}}`)
			}

			_, err := p.Complete(ctx, provider.CompletionRequest{Model: "m"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("quota exceeded"))
		})
	})

	Describe("Stream", func() {
		It("yields deltas in order and tells empty content from absent content", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				decodeBody(r)
				w.Header().Set("Content-Type", "text/event-stream")
				lines := []string{
					`{"choices":[{"index":0,"delta":{"role":"assistant"}}]}`,
					`{"choices":[{"index":0,"delta":{"content":"Hel"}}]}`,
					`{"choices":[{"index":0,"delta":{"content":""}}]}`,
					`{"choices":[{"index":0,"delta":{"content":"lo"}}]}`,
				}
				for _, l := range lines {
					fmt.Fprintf(w, "data: %s\n\n", l)
				}
				fmt.Fprint(w, "data: [DONE]\n\n")
			}

			temp := llm.DefaultTemperature
			stream, err := p.Stream(ctx, provider.CompletionRequest{
				Model:    "m",
				Messages: []llm.Message{llm.TextMessage(llm.RoleUser, "hi")},
				Options:  llm.Options{Temperature: &temp},
			})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			var deltas []provider.Delta
			for {
				d, err := stream.Recv()
				if errors.Is(err, io.EOF) {
					break
				}
				Expect(err).NotTo(HaveOccurred())
				deltas = append(deltas, d)
			}

			Expect(received["stream"]).To(BeTrue())
			Expect(received["temperature"]).To(BeNumerically("~", 0.8, 0.001))
			Expect(deltas).To(HaveLen(4))
			Expect(deltas[0].Content).To(BeNil())
			Expect(*deltas[1].Content).To(Equal("Hel"))
			Expect(deltas[2].Content).NotTo(BeNil())
			Expect(*deltas[2].Content).To(BeEmpty())
			Expect(*deltas[3].Content).To(Equal("lo"))
		})
	})

	Describe("ListModels", func() {
		It("returns the model ids", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				Expect(strings.HasSuffix(r.URL.Path, "/models")).To(BeTrue())
				fmt.Fprint(w, `{"object":"list","data":[{"id":"gpt-4o"},{"id":"gemini-1.5-flash"}]}`)
			}

			ids, err := p.ListModels(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"gpt-4o", "gemini-1.5-flash"}))
		})
	})
})
