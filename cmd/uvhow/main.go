package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/uvhow-dev/uvhow/internal/detect"
	"github.com/uvhow-dev/uvhow/internal/log"
	"github.com/uvhow-dev/uvhow/internal/userconfig"
)

// Version is the current version of uvhow
var Version = "0.2.0"

var (
	jsonOut      bool
	plainOut     bool
	probeTimeout time.Duration
	verbose      bool
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "uvhow",
	Short: "Detect how uv was installed and how to upgrade it",
	Long: `uvhow inspects the uv executable on your PATH and reports which
installation channel put it there (standalone installer, Homebrew,
pipx, Cargo, Scoop, ...) along with the matching upgrade command.

It never installs or modifies anything; it only classifies and
advises. "uv is not installed" is a normal outcome and exits 0.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		userCfg, err := userconfig.Load()
		if err != nil {
			log.Default().Warn("ignoring unreadable config file", "error", err)
			userCfg = userconfig.DefaultConfig()
		}

		var opts []detect.Option
		switch {
		case probeTimeout > 0:
			opts = append(opts, detect.WithTimeout(probeTimeout))
		case userCfg.ProbeTimeoutSeconds > 0:
			opts = append(opts, detect.WithTimeout(time.Duration(userCfg.ProbeTimeoutSeconds)*time.Second))
		}

		result, err := detect.New(opts...).Detect(cmd.Context(), userCfg.Command)

		out := cmd.OutOrStdout()
		emoji := useEmoji(userCfg.Emoji, plainOut)

		if errors.Is(err, detect.ErrNotInstalled) {
			if jsonOut {
				return emitJSON(out, notInstalledPayload(userCfg.Command))
			}
			renderNotInstalled(out, userCfg.Command, emoji)
			return nil
		}
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}

		if jsonOut {
			return emitJSON(out, resultPayload(result))
		}
		renderResult(out, result, emoji)
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	rootCmd.Flags().BoolVar(&plainOut, "plain", false, "Plain output without emoji")
	rootCmd.Flags().DurationVar(&probeTimeout, "timeout", 0, "Version probe timeout (e.g. 3s)")

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Log errors only")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.NewText(os.Stderr, logLevel()))
	}

	rootCmd.AddCommand(configCmd)
}

func logLevel() slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitWithCode(ExitGeneral)
	}
}
