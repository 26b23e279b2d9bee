package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"btl/internal/aria2"
	"btl/internal/config"
	"btl/internal/deps"
	"btl/internal/logging"
	"btl/internal/preflight"
	"btl/internal/trackers"
)

func runLaunch(ctx context.Context, cmd *cobra.Command, env *runtimeEnv, cfg *config.Config, logger *slog.Logger, opts rootOptions, passthrough []string) error {
	cacheDir, err := trackers.ResolveCacheDirectory(cfg)
	if err != nil {
		return err
	}
	if err := preflight.Err(preflight.RunLaunch(cacheDir)); err != nil {
		return err
	}
	binary, err := deps.Require(deps.Downloader(cfg.DownloaderBinary()))
	if err != nil {
		logging.ErrorWithContext(logger, "download manager not found", "aria2_missing",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install aria2 or add aria2c to PATH"),
		)
		return err
	}

	cache := trackers.New(cacheDir,
		trackers.WithURL(cfg.TrackersURL),
		trackers.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		trackers.WithLogger(logger),
	)
	list, err := cache.GetTrackerList(ctx, trackers.Today(env.now), opts.updateTrackers)
	if err != nil {
		logging.ErrorWithContext(logger, "tracker list unavailable", "trackers_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "aria2c was not started"),
			logging.String(logging.FieldErrorHint, "check network access or rerun with -u later"),
		)
		return err
	}

	client, err := aria2.New(binary,
		aria2.WithExecutor(env.executor),
		aria2.WithStdin(env.stdin),
		aria2.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return client.Launch(ctx, list, passthrough, cmd.OutOrStdout())
}
