package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"relviz/internal/config"
	"relviz/internal/diagfmt"
	"relviz/internal/driver"
	"relviz/internal/engine"
	"relviz/internal/fact"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return config.Load(path)
}

func engineRegistry(cfg *config.Config) *engine.Registry {
	r := engine.NewRegistry()
	for name, path := range cfg.Engines {
		r.Override(name, path)
	}
	return r
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 100
	}
	return n
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// printDiagnostics writes the session's accumulated diagnostics to
// stderr.
func printDiagnostics(cmd *cobra.Command, session *driver.Session) {
	if session.Bag.Len() == 0 {
		return
	}
	session.Bag.Sort()
	diagfmt.Pretty(os.Stderr, session.Bag, session.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
}

// parseInput parses a fact file, or stdin when path is "-" or empty.
func parseInput(session *driver.Session, path string) ([]fact.Fact, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return session.ParseText("stdin", string(data))
	}
	return session.ParseFile(path)
}

// openOutput opens the output target, or stdout when path is "-" or
// empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	// #nosec G304 -- path is provided by the caller
	return os.Create(path)
}

func closeOutput(w io.WriteCloser) error {
	if w == os.Stdout {
		return nil
	}
	return w.Close()
}
