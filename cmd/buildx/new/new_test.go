package newcmder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	buildxapi "github.com/papercomputeco/buildx/api"
	"github.com/papercomputeco/buildx/pkg/client"
	"github.com/papercomputeco/buildx/pkg/intake"
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/provider"
)

// keywordProvider answers classification requests by keyword.
type keywordProvider struct{}

func (keywordProvider) Complete(_ context.Context, req provider.CompletionRequest) (string, error) {
	idea := strings.ToLower(req.Messages[len(req.Messages)-1].Text())
	switch {
	case strings.Contains(idea, "animate"):
		return "manim", nil
	case strings.Contains(idea, "app"):
		return "react", nil
	}
	return "I cannot help with that", nil
}

func (keywordProvider) Stream(context.Context, provider.CompletionRequest) (provider.Stream, error) {
	return nil, errors.New("not streaming")
}

func (keywordProvider) ListModels(context.Context) ([]string, error) {
	return nil, nil
}

type countingProjects struct {
	created int
}

func (p *countingProjects) CreateProject(context.Context, string, string) (string, error) {
	p.created++
	return "p" + string(rune('0'+p.created)), nil
}

var _ = Describe("New Command", func() {
	var (
		ctx       context.Context
		tmpDir    string
		statePath string
		addr      string
		projects  *countingProjects
		cleanup   func()
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		tmpDir, err = os.MkdirTemp("", "buildx-new-test-*")
		Expect(err).NotTo(HaveOccurred())
		statePath = filepath.Join(tmpDir, "state.toml")

		projects = &countingProjects{}
		srv, err := buildxapi.NewServer(buildxapi.Config{
			ListenAddr:   ":0",
			DefaultModel: "gpt-4o",
			Models:       []string{"gpt-4o"},
		}, keywordProvider{}, projects, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		go func() {
			_ = srv.RunWithListener(listener)
		}()

		addr = "http://" + listener.Addr().String()
		cleanup = func() {
			srv.Shutdown()
		}
	})

	AfterEach(func() {
		cleanup()
		os.RemoveAll(tmpDir)
	})

	run := func(args ...string) (string, error) {
		var stdout bytes.Buffer
		cmd := NewNewCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(append([]string{"--server", addr, "--state", statePath}, args...))
		err := cmd.ExecuteContext(ctx)
		return stdout.String(), err
	}

	It("prints the code editor route for a web idea", func() {
		out, err := run("--user", "u1", "Build", "a", "todo", "app")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("/editor/p1\n"))
	})

	It("prints the video editor route for an animation idea", func() {
		out, err := run("--user", "u1", "Animate a sine wave")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("/video-editor/p1\n"))
	})

	It("falls back to the stored draft", func() {
		Expect(intake.NewDraftStore(statePath).Save("Build a todo app")).To(Succeed())

		out, err := run("--user", "u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("/editor/p1\n"))
	})

	It("clears the draft after creating the project", func() {
		drafts := intake.NewDraftStore(statePath)
		Expect(drafts.Save("Build a todo app")).To(Succeed())

		_, err := run("--user", "u1")
		Expect(err).NotTo(HaveOccurred())

		draft, err := drafts.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(draft).To(BeEmpty())

		_, err = run("--user", "u1")
		Expect(err).To(MatchError(ContainSubstring("no idea given")))
		Expect(projects.created).To(Equal(1))
	})

	It("keeps an attached image as the project's first message", func() {
		imagePath := filepath.Join(tmpDir, "sketch.png")
		Expect(os.WriteFile(imagePath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600)).To(Succeed())

		out, err := run("--user", "u1", "--image", imagePath, "Build a todo app like this")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("/editor/p1\n"))

		record, err := intake.NewProjectStore(filepath.Join(tmpDir, "projects")).Load("p1")
		Expect(err).NotTo(HaveOccurred())
		Expect(record.Framework).To(Equal(llm.FrameworkReact))
		Expect(record.Messages).To(HaveLen(1))
		Expect(record.Messages[0].HasImage()).To(BeTrue())
		Expect(record.Messages[0].Text()).To(Equal("Build a todo app like this"))
	})

	It("reports rejected prompts", func() {
		_, err := run("--user", "u1", "write a haiku")
		Expect(errors.Is(err, intake.ErrRejectedPrompt)).To(BeTrue())
		Expect(projects.created).To(Equal(0))
	})

	It("reports a missing user as unauthorized", func() {
		_, err := run("--user", "", "Build a todo app")
		Expect(errors.Is(err, client.ErrUnauthorized)).To(BeTrue())
	})
})
