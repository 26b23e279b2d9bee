package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"btl/internal/aria2"
	"btl/internal/config"
	"btl/internal/logging"
)

// runtimeEnv carries the process-level inputs commands read, so tests can
// substitute them.
type runtimeEnv struct {
	platform config.Platform
	now      func() time.Time
	stdin    io.Reader
	executor aria2.Executor
}

func defaultEnv() *runtimeEnv {
	return &runtimeEnv{
		platform: config.DetectPlatform(),
		now:      time.Now,
		stdin:    os.Stdin,
	}
}

type rootOptions struct {
	updateTrackers bool
	moveTo         string
	moveExclude    string
	help           bool
}

func newRootCommand(env *runtimeEnv) *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "btl [flags] [--] [aria2c arguments | source directories]",
		Short: "Launch aria2c with a fresh BitTorrent tracker list",
		Long: `btl downloads the public tracker list once per day, caches it, and
launches aria2c with --bt-tracker set to that list. Arguments btl does not
recognize are passed to aria2c in order.

With --move-to (-m), btl instead moves .mp4 and .mkv files found under the
given source directories into the destination, stripping a leading [group]
tag from each name. --move-to-exclude (-mx) skips entries whose name matches
the regular expression.`,
		Example: `  btl --seed-time=0 "magnet:?xt=urn:btih:..."
  btl -u file.torrent
  btl -m ~/Videos -mx sample ~/Downloads/show ~/Downloads/movie`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			known, passthrough, err := splitArgs(args)
			if err != nil {
				return err
			}
			if err := cmd.Flags().Parse(known); err != nil {
				return err
			}
			if opts.help {
				return cmd.Help()
			}
			return run(cmd, env, opts, passthrough)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.updateTrackers, "update-trackers", "u", false, "Download a fresh tracker list even if today's is cached")
	flags.StringVarP(&opts.moveTo, "move-to", "m", "", "Move video files from the source directories into this directory")
	flags.StringVar(&opts.moveExclude, "move-to-exclude", "", "In move mode, skip entries whose name matches this regular expression (alias -mx)")
	flags.BoolVarP(&opts.help, "help", "h", false, "Show help")

	return rootCmd
}

func run(cmd *cobra.Command, env *runtimeEnv, opts rootOptions, passthrough []string) error {
	cfg, err := config.Load(env.platform)
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := logging.WithRunID(commandContext(cmd), logging.NewRunID())
	logger = logging.WithContext(ctx, logger)

	if opts.moveTo != "" {
		return runMove(ctx, cmd, logger, opts, passthrough)
	}
	if opts.moveExclude != "" {
		logging.WarnWithContext(logger, "--move-to-exclude has no effect without --move-to", "flag_ignored",
			logging.String(logging.FieldErrorHint, "add --move-to <dir> to enable move mode"),
		)
	}
	return runLaunch(ctx, cmd, env, cfg, logger, opts, passthrough)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
