package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relviz/internal/driver"
	"relviz/internal/fact"
)

var factsCmd = &cobra.Command{
	Use:   "facts [flags] [facts.rv]",
	Short: "Parse a fact file and dump the fact sequence",
	Long: `Facts parses a fact file (or stdin) and prints the resulting object
and relation facts, for debugging fact sources`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type attrJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type factJSON struct {
	Kind     string     `json:"kind"`
	Type     string     `json:"type,omitempty"`
	Name     string     `json:"name,omitempty"`
	LHS      string     `json:"lhs,omitempty"`
	LHSLabel string     `json:"lhs_label,omitempty"`
	Rel      string     `json:"rel,omitempty"`
	RHSLabel string     `json:"rhs_label,omitempty"`
	RHS      string     `json:"rhs,omitempty"`
	Attrs    []attrJSON `json:"attrs,omitempty"`
}

func runFacts(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	session := driver.NewSession(maxDiagnostics(cmd))
	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	facts, err := parseInput(session, input)
	if err != nil {
		printDiagnostics(cmd, session)
		return err
	}

	switch format {
	case "pretty":
		printFactsPretty(facts)
		return nil
	case "json":
		return printFactsJSON(facts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printFactsPretty(facts []fact.Fact) {
	for _, f := range facts {
		switch f := f.(type) {
		case fact.Object:
			fmt.Printf("object %s %s\n", f.Type, f.Name)
			printAttrsPretty(f.Attrs)
		case fact.Relation:
			fmt.Printf("relation %s %s %s\n", f.LHS, f.Rel, f.RHS)
			if f.LHSLabel.Set {
				fmt.Printf("  (lhs label %s)\n", f.LHSLabel.Text)
			}
			if f.RHSLabel.Set {
				fmt.Printf("  (rhs label %s)\n", f.RHSLabel.Text)
			}
			printAttrsPretty(f.Attrs)
		}
	}
}

func printAttrsPretty(attrs fact.Attrs) {
	for _, pair := range attrs.Pairs() {
		fmt.Printf("  %s: %s\n", pair.Key, pair.Value)
	}
}

func printFactsJSON(facts []fact.Fact) error {
	out := make([]factJSON, 0, len(facts))
	for _, f := range facts {
		switch f := f.(type) {
		case fact.Object:
			out = append(out, factJSON{
				Kind:  "object",
				Type:  f.Type,
				Name:  f.Name,
				Attrs: attrsJSON(f.Attrs),
			})
		case fact.Relation:
			out = append(out, factJSON{
				Kind:     "relation",
				LHS:      f.LHS,
				LHSLabel: f.LHSLabel.Text,
				Rel:      f.Rel,
				RHSLabel: f.RHSLabel.Text,
				RHS:      f.RHS,
				Attrs:    attrsJSON(f.Attrs),
			})
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func attrsJSON(attrs fact.Attrs) []attrJSON {
	out := make([]attrJSON, 0, attrs.Len())
	for _, pair := range attrs.Pairs() {
		out = append(out, attrJSON{Key: pair.Key, Value: pair.Value})
	}
	return out
}
