// Command keyprobe checks OpenAI API keys, either as an HTTP service or
// one-shot from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/keyprobe/internal/config"
	"github.com/mandalnilabja/keyprobe/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	port       string
	logLevel   string
}

// newRootCmd creates the root command. Running it without a subcommand
// starts the server.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "keyprobe",
		Short: "OpenAI API key checker",
		Long: `keyprobe validates OpenAI API keys against the upstream API.

It serves a small HTTP API (POST /api/check-key, POST /api/chat) with a
landing page, or runs a single check from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (TOML, or YAML by extension)")
	rootCmd.PersistentFlags().StringVarP(&flags.port, "port", "p", "", "Address or port to listen on (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flags.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(flags),
		newProbeCmd(flags, "check", "Check that a key is accepted by the model-listing endpoint"),
		newProbeCmd(flags, "chat", "Send a one-line chat completion with a key"),
		newInitCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig applies CLI flags over the env and file configuration.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.port != "" {
		cfg.ServerPort = config.NormalizeAddr(flags.port)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.EnsureConfigFile(); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "keyprobe %s\n", version.Version)
		},
	}
}
