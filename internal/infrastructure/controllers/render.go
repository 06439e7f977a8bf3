package controllers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

const summaryWidth = 60

// renderChangeSet prints the change summary grouped by kind, with a total.
func renderChangeSet(out io.Writer, branch string, changes entities.ChangeSet) {
	if changes.IsEmpty() {
		_, _ = fmt.Fprintln(out, "No changes detected.")
		return
	}

	rule := strings.Repeat("=", summaryWidth)
	_, _ = fmt.Fprintln(out, rule)
	if branch != "" {
		_, _ = fmt.Fprintf(out, "CHANGES SUMMARY (%s)\n", branch)
	} else {
		_, _ = fmt.Fprintln(out, "CHANGES SUMMARY")
	}
	_, _ = fmt.Fprintln(out, rule)
	_, _ = fmt.Fprintln(out)

	renderBucket(out, color.New(color.FgGreen), "[+] New or Added", "+", changes.Added)
	renderBucket(out, color.New(color.FgYellow), "[~] Modified or Renamed", "~", changes.Modified)
	renderBucket(out, color.New(color.FgRed), "[-] Deleted", "-", changes.Deleted)

	_, _ = fmt.Fprintln(out, rule)
	_, _ = fmt.Fprintf(out, "TOTAL: %d changes\n", changes.Total())
	_, _ = fmt.Fprintln(out, rule)
}

func renderBucket(out io.Writer, paint *color.Color, title, marker string, paths []string) {
	if len(paths) == 0 {
		return
	}
	_, _ = paint.Fprintf(out, "%s (%d):\n", title, len(paths))
	for _, path := range paths {
		_, _ = paint.Fprintf(out, "    %s %s\n", marker, path)
	}
	_, _ = fmt.Fprintln(out)
}

// outcomeError prints the final status line and converts the outcome for cobra.
func outcomeError(out io.Writer, kind entities.SessionKind, outcome entities.Outcome) error {
	switch {
	case outcome.IsSucceeded():
		_, _ = color.New(color.FgGreen).Fprintf(out, "%s succeeded\n", kind)
		return nil
	case outcome.IsCancelled():
		_, _ = color.New(color.FgYellow).Fprintf(out, "%s stopped by user\n", kind)
		return errCancelled
	default:
		_, _ = color.New(color.FgRed).Fprintf(out, "%s %s\n", kind, outcome)
		if outcome.Err != nil {
			return outcome.Err
		}
		return fmt.Errorf("%s failed at %s", kind, outcome.Step)
	}
}
