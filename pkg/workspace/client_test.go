package workspace_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/workspace"
)

var _ = Describe("Client", func() {
	var (
		ctx     context.Context
		server  *httptest.Server
		handler http.HandlerFunc
		client  *workspace.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			handler(w, r)
		}))
		client = workspace.NewClient(server.URL+"/", zap.NewNop())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("CreateProject", func() {
		It("posts the prompt and framework and returns the id", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/projects"))
				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body).To(Equal(map[string]string{"prompt": "Build a todo app", "framework": "react"}))
				fmt.Fprint(w, `{"id":"p-123"}`)
			}

			id, err := client.CreateProject(ctx, "Build a todo app", "react")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("p-123"))
		})

		It("fails when the service rejects the request", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error":"no capacity"}`)
			}

			_, err := client.CreateProject(ctx, "x", "node")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("500"))
			Expect(err.Error()).To(ContainSubstring("no capacity"))
		})
	})

	Describe("FetchFile", func() {
		It("fetches by container id and path", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/containers/c1/files"))
				Expect(r.URL.Query().Get("path")).To(Equal("src/App.tsx"))
				fmt.Fprint(w, `{"fileName":"App.tsx","fileDir":"src","fileType":"file","fileContent":"export {}","success":true}`)
			}

			file, err := client.FetchFile(ctx, "c1", "src/App.tsx")
			Expect(err).NotTo(HaveOccurred())
			Expect(file).To(Equal(workspace.FileContent{
				FileName:    "App.tsx",
				FileDir:     "src",
				FileType:    "file",
				FileContent: "export {}",
				Success:     true,
			}))
		})

		It("returns ErrNotFound for a missing file", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}

			file, err := client.FetchFile(ctx, "c1", "nope.ts")
			Expect(errors.Is(err, workspace.ErrNotFound)).To(BeTrue())
			Expect(file).To(Equal(workspace.EmptyFile))
		})
	})

	Describe("SaveFile", func() {
		It("puts directory, name and content", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPut))
				Expect(r.URL.Path).To(Equal("/containers/c1/files"))
				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body["fileDir"]).To(Equal("src"))
				Expect(body["fileName"]).To(Equal("App.tsx"))
				Expect(body["fileContent"]).To(Equal("new"))
				fmt.Fprint(w, `{"success":true}`)
			}

			Expect(client.SaveFile(ctx, "c1", "src", "App.tsx", "new")).To(Succeed())
		})

		It("fails when the service reports failure", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"success":false,"error":"disk full"}`)
			}

			err := client.SaveFile(ctx, "c1", "src", "App.tsx", "new")
			Expect(err).To(MatchError(ContainSubstring("disk full")))
		})
	})
})

var _ = Describe("SplitPath", func() {
	DescribeTable("splits into directory and name",
		func(in, dir, name string) {
			d, n := workspace.SplitPath(in)
			Expect(d).To(Equal(dir))
			Expect(n).To(Equal(name))
		},
		Entry("nested", "src/components/Button.tsx", "/src/components", "Button.tsx"),
		Entry("leading slash", "/src/App.tsx", "/src", "App.tsx"),
		Entry("root file", "index.js", "", "index.js"),
	)
})
