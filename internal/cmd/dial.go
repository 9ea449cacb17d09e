package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/julienstroheker/httperr/adapter"
	"github.com/julienstroheker/httperr/internal/logging"
)

type dialOptions struct {
	headers []string
	timeout time.Duration
}

func newDialCmd(s *state) *cobra.Command {
	opts := &dialOptions{}

	dialCmd := &cobra.Command{
		Use:   "dial <ws-url>",
		Short: "Open a websocket and explain a rejected handshake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.timeout > 0 {
				s.cfg.Timeout = opts.timeout
			}
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			return runDial(cmd, s, opts, args[0])
		},
	}

	dialCmd.Flags().StringArrayVarP(&opts.headers, "header", "H", nil, "Handshake header as key=value (repeatable)")
	dialCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Handshake timeout (overrides HTTPERR_TIMEOUT)")

	return dialCmd
}

func runDial(cmd *cobra.Command, s *state, opts *dialOptions, target string) error {
	pairs, err := parsePairs("header", opts.headers)
	if err != nil {
		return err
	}
	header := http.Header{}
	for key, values := range pairs {
		for _, v := range values {
			header.Add(key, v)
		}
	}

	logger := s.logger.With(logging.String("command", "dial"), logging.String("target", target))

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = s.cfg.Timeout

	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Timeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, target, header)
	if err != nil {
		err = newEnhancer(s.cfg.MessagePaths).Enhance(adapter.FromHandshake(target, resp, err))
		logger.Warn("Websocket handshake failed", logging.Failure(err)...)
		if renderErr := renderFailure(cmd.OutOrStdout(), s.cfg.Output, err); renderErr != nil {
			logger.Error("Failed to render failure", logging.Error(renderErr))
		}
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	logger.Info("Websocket connected")
	cmd.Printf("Connected to %s\n", target)

	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
