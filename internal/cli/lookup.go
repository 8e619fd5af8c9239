package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/git-release-name/internal/phrase"
	"github.com/rcliao/git-release-name/internal/sha"
)

func runLookup(cmd *cobra.Command, args []string) {
	format, err := formatFor(cmd)
	if err != nil {
		exitErr("format", err)
	}
	r, err := newResolver()
	if err != nil {
		exitErr("load dictionary", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case len(args) > 0:
		err = printNames(out, r, args, format)
	case stdinIsTerminal():
		logger.Debug("No input, generating a random name")
		err = printRandom(out, r, format)
	default:
		err = printFromReader(out, cmd.InOrStdin(), r, format)
	}
	if err != nil {
		exitErr("lookup", err)
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printNames writes one name per sha and stops at the first invalid sha.
func printNames(w io.Writer, r *phrase.Resolver, shas []string, c phrase.Case) error {
	for _, s := range shas {
		p, err := r.Resolve(s)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, p.WithCase(c))
	}
	return nil
}

func printRandom(w io.Writer, r *phrase.Resolver, c phrase.Case) error {
	key := sha.Random()
	p, err := r.ResolveKey(key)
	if err != nil {
		return err
	}
	logger.Debug("Random sha", zap.String("sha", key.String()))
	fmt.Fprintln(w, p.WithCase(c))
	return nil
}

// printFromReader treats each non-blank line of in as a sha.
func printFromReader(w io.Writer, in io.Reader, r *phrase.Resolver, c phrase.Case) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p, err := r.Resolve(line)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, p.WithCase(c))
	}
	return sc.Err()
}
