package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/julienstroheker/httperr/adapter"
	"github.com/julienstroheker/httperr/enhancer"
	"github.com/julienstroheker/httperr/internal/httpclient"
	"github.com/julienstroheker/httperr/internal/logging"
)

type probeOptions struct {
	method       string
	baseURL      string
	params       []string
	data         string
	messagePaths []string
	timeout      time.Duration
}

func newProbeCmd(s *state) *cobra.Command {
	opts := &probeOptions{}

	probeCmd := &cobra.Command{
		Use:   "probe <url>",
		Short: "Send a request and explain the failure, if any",
		Long: `Send a request and print the response body. When the request fails the
method, URL, status, server message and error code are rendered and the
command exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.baseURL != "" {
				s.cfg.BaseURL = opts.baseURL
			}
			if opts.timeout > 0 {
				s.cfg.Timeout = opts.timeout
			}
			if len(opts.messagePaths) > 0 {
				s.cfg.MessagePaths = opts.messagePaths
			}
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			return runProbe(cmd.Context(), cmd, s, opts, args[0])
		},
	}

	probeCmd.Flags().StringVarP(&opts.method, "method", "X", http.MethodGet, "HTTP method")
	probeCmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Base URL joined with a relative <url> (overrides HTTPERR_BASE_URL)")
	probeCmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Query parameter as key=value (repeatable)")
	probeCmd.Flags().StringVarP(&opts.data, "data", "d", "", "Request body")
	probeCmd.Flags().StringSliceVar(&opts.messagePaths, "message-path", nil, "Dotted path to the server message in error bodies (repeatable)")
	probeCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (overrides HTTPERR_TIMEOUT)")

	return probeCmd
}

func runProbe(ctx context.Context, cmd *cobra.Command, s *state, opts *probeOptions, target string) error {
	params, err := parsePairs("param", opts.params)
	if err != nil {
		return err
	}

	logger := s.logger.With(logging.String("command", "probe"), logging.String("target", target))

	clientOpts := httpclient.DefaultOptions()
	clientOpts.Timeout = s.cfg.Timeout
	clientOpts.BaseURL = s.cfg.BaseURL
	clientOpts.Logger = logger
	clientOpts.Enhancer = newEnhancer(s.cfg.MessagePaths)
	if s.cfg.UserAgent != "" {
		clientOpts.UserAgent = s.cfg.UserAgent
	}
	client := httpclient.NewClient(clientOpts)

	var body io.Reader
	if opts.data != "" {
		body = strings.NewReader(opts.data)
	}

	req, err := client.NewRequest(ctx, &enhancer.RequestConfig{
		Method: opts.method,
		URL:    target,
		Params: params,
	}, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if opts.data != "" {
		req.Header.Set("Content-Type", contentType(opts.data))
	}

	resp, err := client.Do(req)
	if err != nil {
		if renderErr := renderFailure(cmd.OutOrStdout(), s.cfg.Output, err); renderErr != nil {
			logger.Error("Failed to render failure", logging.Error(renderErr))
		}
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Info("Request succeeded",
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
		logging.Int("status", resp.StatusCode))

	_, err = io.Copy(cmd.OutOrStdout(), resp.Body)
	return err
}

// newEnhancer tries the given paths before the default message locations
func newEnhancer(paths []string) *enhancer.Enhancer {
	if len(paths) == 0 {
		return enhancer.Configure(nil)
	}
	return enhancer.Configure(&enhancer.Options{
		ExtractMessage: enhancer.ChainExtractors(
			enhancer.FieldExtractor(paths...),
			enhancer.DefaultExtractMessage,
		),
	})
}

// parsePairs parses key=value flag values
func parsePairs(flag string, raw []string) (url.Values, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pairs := url.Values{}
	for _, p := range raw {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected key=value", flag, p)
		}
		pairs.Add(key, value)
	}
	return pairs, nil
}

func contentType(data string) string {
	if json.Valid([]byte(data)) {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// codeHints explain transport codes to someone reading a terminal
var codeHints = map[string]string{
	adapter.CodeTimeout:      "The server took too long to respond.",
	adapter.CodeCanceled:     "The request was canceled before it completed.",
	adapter.CodeConnRefused:  "The server is not accepting connections. Check the address and port.",
	adapter.CodeConnReset:    "The connection was closed before a response arrived.",
	adapter.CodeHostNotFound: "The host name could not be resolved. Check DNS and the URL.",
	adapter.CodeNetwork:      "The request could not be sent.",
	adapter.CodeBadResponse:  "The server failed to handle the request.",
}

func hintFor(code string) string {
	return codeHints[code]
}
