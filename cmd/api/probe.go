package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/keyprobe/internal/app"
	"github.com/mandalnilabja/keyprobe/internal/keycheck"
)

// errProbeFailed signals a non-200 probe result so main exits with status 1.
var errProbeFailed = errors.New("probe failed")

// newProbeCmd builds the one-shot check and chat commands. The key comes
// from the argument or, when omitted, the OPENAI_API_KEY environment variable.
func newProbeCmd(flags *rootFlags, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [key]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := os.Getenv("OPENAI_API_KEY")
			if len(args) == 1 {
				key = args[0]
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closer, err := setupLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			svc := app.NewService(cfg, logger, nil)
			return runProbe(cmd.Context(), cmd.OutOrStdout(), name, svc, key)
		},
	}
}

// runProbe runs one operation and prints the response as JSON.
func runProbe(ctx context.Context, w io.Writer, name string, svc *keycheck.Service, key string) error {
	var resp keycheck.Response
	switch name {
	case "check":
		resp = svc.CheckKey(ctx, key)
	case "chat":
		resp = svc.ProbeChat(ctx, key)
	default:
		return fmt.Errorf("unknown probe %q", name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return fmt.Errorf("%w: status %d", errProbeFailed, resp.Status)
	}
	return nil
}
