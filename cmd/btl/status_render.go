package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// statusKind selects the tag and color of a summary line.
type statusKind struct {
	tag   string
	color string
}

var (
	statusInfo  = statusKind{tag: "INFO", color: ansiBlue}
	statusOK    = statusKind{tag: "OK", color: ansiGreen}
	statusError = statusKind{tag: "ERROR", color: ansiRed}
)

// summaryLabelWidth fits "Problems:" with room to spare.
const summaryLabelWidth = 12

// renderStatusLine formats "  Label:  [TAG] message", padded so tags align.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s [%s]", summaryLabelWidth, label+":", kind.tag)
	if message != "" {
		b.WriteString(" " + message)
	}
	if !colorize {
		return b.String()
	}
	return kind.color + b.String() + ansiReset
}

func renderSectionHeader(title string, colorize bool) string {
	header := "== " + strings.TrimSpace(title) + " =="
	if colorize {
		return ansiBlue + header + ansiReset
	}
	return header
}

// shouldColorize reports whether w is a terminal.
func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
