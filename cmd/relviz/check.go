package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relviz/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [facts.rv]",
	Short: "Validate a fact file without rendering",
	Long: `Check parses a fact file (or stdin), builds the fact model and the
cluster graph, and reports diagnostics. The exit status is non-zero
when validation fails`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("style", "s", "", "style file applied on top of the default style")
	checkCmd.Flags().Bool("no-default-style", false, "do not use the embedded default style")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stylePath, _ := cmd.Flags().GetString("style")
	if stylePath == "" {
		stylePath = cfg.Style.Path
	}
	noDefault, _ := cmd.Flags().GetBool("no-default-style")

	session := driver.NewSession(maxDiagnostics(cmd))
	defer printDiagnostics(cmd, session)

	styleFacts, err := session.StyleFacts(cfg.Style.Default && !noDefault, stylePath)
	if err != nil {
		return err
	}
	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	contentFacts, err := parseInput(session, input)
	if err != nil {
		return err
	}
	m, err := session.Check(styleFacts, contentFacts)
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "ok: %d facts, %d entities\n",
			len(contentFacts), len(m.Names()))
	}
	return nil
}
