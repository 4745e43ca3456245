// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quizconv/internal/history"
	"github.com/pdiddy/quizconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversions from the history database",
	Long: `History lists the transcripts processed by earlier convert runs, newest
first, with their status and question counts. Use --export to write the
whole log (or a filtered subset) to a YAML or JSON file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum rows to list (0 = use history.max_results)")
	historyCmd.Flags().String("status", "", "filter by status: converted, skipped, failed")
	historyCmd.Flags().String("run", "", "filter by run ID")
	historyCmd.Flags().String("source", "", "filter by transcript path substring")
	historyCmd.Flags().Bool("json", false, "output rows as JSON")
	historyCmd.Flags().String("export", "", "write the log to this file (.yaml, .yml or .json)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := historyOptsFromFlags(cmd)
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		switch {
		case strings.HasSuffix(path, ".json"):
			err = store.ExportJSON(ctx, path, opts)
		case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
			err = store.ExportYAML(ctx, path, opts)
		default:
			return fmt.Errorf("unsupported export file %q: use .yaml, .yml or .json", path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", path)
		return nil
	}

	entries, err := store.Recent(ctx, opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(out, entries, jsonOutput)
}

func historyOptsFromFlags(cmd *cobra.Command) history.QueryOptions {
	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	runID, _ := cmd.Flags().GetString("run")
	source, _ := cmd.Flags().GetString("source")
	return history.QueryOptions{
		RunID:  runID,
		Status: types.ConversionStatus(status),
		Source: source,
		Limit:  limit,
	}
}

func formatHistoryOutput(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-40s  %9s  %s\n", "Converted at", "Status", "Transcript", "Questions", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		src := e.SourcePath
		if len(src) > 40 {
			src = "..." + src[len(src)-37:]
		}
		note := e.Error
		if note == "" && len(e.Unmatched) > 0 {
			note = fmt.Sprintf("unmatched key: %s", strings.Join(e.Unmatched, ", "))
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-40s  %9d  %s\n",
			e.ConvertedAt.Local().Format("2006-01-02 15:04:05"), e.Status, src, e.Questions, note)
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	return nil
}
