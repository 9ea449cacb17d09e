// Package cmd holds the httperr command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julienstroheker/httperr/internal/config"
	"github.com/julienstroheker/httperr/internal/logging"
)

// state is shared by the commands of one command tree
type state struct {
	cfg         *config.Config
	logger      *logging.Logger
	envFile     string
	verboseFlag bool
	jsonFlag    bool
}

// NewRootCmd builds the httperr command tree
func NewRootCmd() *cobra.Command {
	s := &state{}

	rootCmd := &cobra.Command{
		Use:   "httperr",
		Short: "Inspect failed HTTP requests",
		Long: `httperr - issue HTTP requests and explain failures with the method, URL,
status, server message and error code of the request that failed`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnvFile(s.envFile)
			if err != nil {
				return err
			}
			if s.jsonFlag {
				cfg.Output = config.OutputJSON
			}
			s.cfg = cfg

			level := logging.ParseLevel(cfg.LogLevel)
			if s.verboseFlag {
				level = logging.DebugLevel
			}

			s.logger = logging.NewWithOutput(level, cmd.ErrOrStderr())
			format := logging.FormatConsole
			if s.jsonFlag {
				format = logging.FormatJSON
				s.logger.SetFormat(format)
			}
			s.logger.Debug("Logger initialized",
				logging.String("level", level.String()),
				logging.String("format", format.String()),
			)
			return nil
		},
	}

	// Disable default completion and help commands
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().BoolVarP(&s.verboseFlag, "verbose", "v", false, "Enable verbose logging (debug level)")
	rootCmd.PersistentFlags().BoolVar(&s.jsonFlag, "json", false, "Output logs and failures in JSON format")
	rootCmd.PersistentFlags().StringVar(&s.envFile, "env-file", ".env", "File to seed HTTPERR_* variables from")

	rootCmd.AddCommand(newProbeCmd(s))
	rootCmd.AddCommand(newDialCmd(s))
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
