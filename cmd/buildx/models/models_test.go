package modelscmder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	buildxapi "github.com/papercomputeco/buildx/api"
	"github.com/papercomputeco/buildx/pkg/client"
	"github.com/papercomputeco/buildx/pkg/provider"
)

type noopProvider struct{}

func (noopProvider) Complete(context.Context, provider.CompletionRequest) (string, error) {
	return "", errors.New("not used")
}

func (noopProvider) Stream(context.Context, provider.CompletionRequest) (provider.Stream, error) {
	return nil, errors.New("not used")
}

func (noopProvider) ListModels(context.Context) ([]string, error) {
	return nil, nil
}

var _ = Describe("Models Command", func() {
	var (
		addr    string
		cleanup func()
	)

	BeforeEach(func() {
		srv, err := buildxapi.NewServer(buildxapi.Config{
			DefaultModel: "gpt-4o",
			Models:       []string{"gpt-4o=GPT-4o", "claude-3-5-sonnet=Claude 3.5 Sonnet"},
		}, noopProvider{}, nil, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		go func() {
			_ = srv.RunWithListener(listener)
		}()

		addr = "http://" + listener.Addr().String()
		cleanup = func() { srv.Shutdown() }
	})

	AfterEach(func() {
		cleanup()
	})

	run := func(args ...string) (string, error) {
		var stdout bytes.Buffer
		cmd := NewModelsCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(args)
		err := cmd.ExecuteContext(context.Background())
		return stdout.String(), err
	}

	It("marks the active model", func() {
		out, err := run("--server", addr, "--user", "u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(MatchRegexp(`(?m)^\* +gpt-4o +GPT-4o$`))
		Expect(out).To(MatchRegexp(`(?m)^  +claude-3-5-sonnet +Claude 3.5 Sonnet$`))
	})

	It("switches the active model", func() {
		_, err := run("use", "--server", addr, "--user", "u1", "claude-3-5-sonnet")
		Expect(err).NotTo(HaveOccurred())

		out, err := run("--server", addr, "--user", "u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(MatchRegexp(`(?m)^\* +claude-3-5-sonnet`))
	})

	It("rejects unknown models", func() {
		_, err := run("use", "--server", addr, "--user", "u1", "nope")
		var apiErr *client.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(400))
	})
})
