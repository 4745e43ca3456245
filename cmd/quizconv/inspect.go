// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizconv/internal/classify"
	"github.com/pdiddy/quizconv/internal/parse"
	"github.com/pdiddy/quizconv/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <transcript>",
	Short: "Show how a transcript is parsed",
	Long: `Inspect parses a single transcript and prints the resulting question
sections and answer key as YAML (default) or JSON. With --lines it prints the
classification of every line instead, which helps locate the line that ends
a section early.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format: yaml or json")
	inspectCmd.Flags().Bool("lines", false, "print the classification of each line")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Convert.Validate(); err != nil {
		return err
	}
	labels := cfg.Convert.Labels()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()

	if lines, _ := cmd.Flags().GetBool("lines"); lines {
		return printLineKinds(out, parse.NewCursor(f), labels)
	}

	doc, err := parse.New(labels).Parse(f)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeDocument(out, doc, format)
}

func writeDocument(w io.Writer, doc *types.Document, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func printLineKinds(w io.Writer, cur *parse.Cursor, labels types.LabelSet) error {
	for ; !cur.Done(); cur.Advance() {
		fmt.Fprintf(w, "%4d  %-10s  %s\n", cur.Number(), classify.Classify(cur.Line(), labels), cur.Line())
	}
	return cur.Err()
}
