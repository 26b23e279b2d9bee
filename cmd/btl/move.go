package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"btl/internal/config"
	"btl/internal/logging"
	"btl/internal/preflight"
	"btl/internal/relocate"
)

func runMove(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, opts rootOptions, sources []string) error {
	var exclude *regexp.Regexp
	if opts.moveExclude != "" {
		re, err := regexp.Compile(opts.moveExclude)
		if err != nil {
			return fmt.Errorf("invalid --move-to-exclude pattern: %w", err)
		}
		exclude = re
	}
	if len(sources) == 0 {
		return errors.New("move mode needs at least one source directory")
	}

	dest, err := config.ExpandPath(opts.moveTo)
	if err != nil {
		return err
	}
	if err := preflight.Err(preflight.RunMove(dest)); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "move files from %s to %s\n", strings.Join(sources, ", "), dest)

	relocator, err := relocate.New(dest, relocate.WithExclude(exclude), relocate.WithLogger(logger))
	if err != nil {
		return err
	}
	results, moveErr := relocator.MoveAll(ctx, sources)

	var listErr *relocate.ListError
	if errors.As(moveErr, &listErr) {
		logging.ErrorWithContext(logger, "source directory could not be listed", "relocate_list_failed",
			logging.String("dir", listErr.Dir),
			logging.Error(listErr.Err),
			logging.String(logging.FieldImpact, "remaining source trees were cancelled"),
			logging.String(logging.FieldErrorHint, "check the path exists and is readable"),
		)
	}

	writeMoveSummary(stdout, results, moveErr, shouldColorize(stdout))
	return moveErr
}

func writeMoveSummary(w io.Writer, results []relocate.Result, moveErr error, colorize bool) {
	var total int64
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		total += r.Size
		rows = append(rows, []string{r.Source, r.Destination, humanize.IBytes(uint64(r.Size))})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, renderSectionHeader("Move Summary", colorize))
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable([]string{"Source", "Destination", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	}

	moved := fmt.Sprintf("%d file(s), %s", len(results), humanize.IBytes(uint64(total)))
	kind := statusOK
	if len(results) == 0 {
		kind = statusInfo
	}
	fmt.Fprintln(w, renderStatusLine("Moved", kind, moved, colorize))

	if moveErr != nil {
		fmt.Fprintln(w, renderStatusLine("Problems", statusError, fmt.Sprintf("%d", countErrors(moveErr)), colorize))
	}
}

// countErrors counts the leaves of a tree built with errors.Join.
func countErrors(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += countErrors(e)
		}
		return n
	}
	return 1
}
