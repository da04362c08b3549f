package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"relviz/internal/driver"
	"relviz/internal/engine"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] [facts.rv ...]",
	Short: "Render fact files as DOT text or a laid-out image",
	Long: `Render parses fact files (or stdin), applies the style, and writes
the composed graph. Without --engine the output is DOT text; with
--engine the graph is piped through the named graphviz layout
process`,
	Args: cobra.ArbitraryArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("style", "s", "", "style file applied on top of the default style")
	renderCmd.Flags().Bool("no-default-style", false, "do not use the embedded default style")
	renderCmd.Flags().StringP("output", "o", "", "output file (single input; default stdout)")
	renderCmd.Flags().String("output-dir", "", "output directory (multiple inputs)")
	renderCmd.Flags().String("engine", "", "layout engine (dot|fdp|neato|sfdp|circo|twopi)")
	renderCmd.Flags().String("format", "svg", "output format passed to the engine")
}

type renderOptions struct {
	stylePath    string
	defaultStyle bool
	engineName   string
	format       string
	maxDiags     int
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	registry := engineRegistry(cfg)

	stylePath, _ := cmd.Flags().GetString("style")
	if stylePath == "" {
		stylePath = cfg.Style.Path
	}
	noDefault, _ := cmd.Flags().GetBool("no-default-style")
	engineName, _ := cmd.Flags().GetString("engine")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if engineName != "" {
		if _, err := registry.Resolve(engineName); err != nil {
			return err
		}
	}
	opts := renderOptions{
		stylePath:    stylePath,
		defaultStyle: cfg.Style.Default && !noDefault,
		engineName:   engineName,
		format:       format,
		maxDiags:     maxDiagnostics(cmd),
	}

	if len(args) <= 1 {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		return renderTo(cmd, registry, opts, input, output)
	}
	if output != "" {
		return fmt.Errorf("--output is ambiguous with multiple inputs; use --output-dir")
	}
	return renderBatch(cmd, registry, opts, args, outputDir)
}

func renderTo(cmd *cobra.Command, registry *engine.Registry, opts renderOptions, input, output string) error {
	data, err := renderOne(cmd.Context(), cmd, registry, opts, input)
	if err != nil {
		return err
	}
	w, err := openOutput(output)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		closeOutput(w)
		return err
	}
	return closeOutput(w)
}

// renderOne runs the full pipeline for a single input. Each input
// gets its own session so parallel renders share nothing.
func renderOne(ctx context.Context, cmd *cobra.Command, registry *engine.Registry, opts renderOptions, input string) ([]byte, error) {
	session := driver.NewSession(opts.maxDiags)
	defer printDiagnostics(cmd, session)

	styleFacts, err := session.StyleFacts(opts.defaultStyle, opts.stylePath)
	if err != nil {
		return nil, err
	}
	contentFacts, err := parseInput(session, input)
	if err != nil {
		return nil, err
	}
	g, err := session.BuildGraph(styleFacts, contentFacts)
	if err != nil {
		return nil, err
	}
	if opts.engineName == "" {
		return []byte(g.String()), nil
	}
	return registry.Render(ctx, opts.engineName, opts.format, []byte(g.String()))
}

// renderBatch renders multiple fact files concurrently. Output
// names derive from the input names.
func renderBatch(cmd *cobra.Command, registry *engine.Registry, opts renderOptions, inputs []string, outputDir string) error {
	ext := ".dot"
	if opts.engineName != "" {
		ext = "." + opts.format
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			data, err := renderOne(ctx, cmd, registry, opts, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			out := strings.TrimSuffix(input, filepath.Ext(input)) + ext
			if outputDir != "" {
				out = filepath.Join(outputDir, filepath.Base(out))
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			if !quiet(cmd) {
				fmt.Fprintf(os.Stderr, "%s -> %s\n", input, out)
			}
			return nil
		})
	}
	return g.Wait()
}
