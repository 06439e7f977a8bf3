package controllers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// confirmationWord must be typed exactly before a force push is started.
const confirmationWord = "YES"

// confirmForcePush asks for the literal confirmation word. A non-empty preset
// (from --confirm) is checked instead of prompting.
func confirmForcePush(in io.Reader, out io.Writer, remoteURL, preset string) error {
	if preset != "" {
		if preset != confirmationWord {
			return fmt.Errorf("%w: --confirm must be %q", entities.ErrNotConfirmed, confirmationWord)
		}
		return nil
	}

	warning := color.New(color.FgRed, color.Bold)
	_, _ = warning.Fprintln(out, "!!! WARNING !!!")
	_, _ = fmt.Fprintf(out, "This will FORCE PUSH to %s!\n", entities.StripCredentials(remoteURL))
	_, _ = fmt.Fprintln(out, "The remote will be overwritten to match your local folder exactly.")
	_, _ = fmt.Fprintf(out, "Type '%s' to confirm: ", confirmationWord)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return fmt.Errorf("%w: no answer given", entities.ErrNotConfirmed)
	}
	if strings.TrimRight(answer, "\r\n") != confirmationWord {
		return entities.ErrNotConfirmed
	}
	return nil
}
