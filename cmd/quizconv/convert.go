// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizconv/internal/convert"
	"github.com/pdiddy/quizconv/internal/history"
	"github.com/pdiddy/quizconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [transcripts...]",
	Short: "Convert quiz transcripts into tab-delimited import files",
	Long: `Convert finds every .txt transcript under the input directory (or takes
the transcripts named on the command line), parses its question sections and
answer key, and writes an import file with the same name into the output
directory. The output directory is emptied first unless --clean=false.

A transcript that fails to parse produces no output file; the remaining
transcripts are still converted and the command exits non-zero.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("input-dir", ".", "directory searched recursively for .txt transcripts")
	convertCmd.Flags().String("output-dir", "output", "directory that receives the import files")
	convertCmd.Flags().Bool("clean", true, "remove existing files from the output directory first")
	convertCmd.Flags().Bool("history", true, "record the run in the history database")

	_ = viper.BindPFlag("convert.input_dir", convertCmd.Flags().Lookup("input-dir"))
	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("convert.clean", convertCmd.Flags().Lookup("clean"))
	_ = viper.BindPFlag("history.enabled", convertCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	out := cmd.OutOrStdout()

	var result convert.BatchResult
	if len(args) > 0 {
		result, err = convert.RunFiles(ctx, cfg.Convert, logger, args, out)
	} else {
		result, err = convert.Run(ctx, cfg.Convert, logger, out)
	}
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		recordHistory(ctx, cfg.History, history.Run{
			StartedAt: started,
			InputDir:  cfg.Convert.InputDir,
			OutputDir: cfg.Convert.OutputDir,
			Converted: result.Converted,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
		}, result)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d transcript(s) failed conversion", result.Failed)
	}
	return nil
}

// recordHistory stores the batch outcome. History is best effort: a
// failure is logged and does not fail the conversion.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, run history.Run, result convert.BatchResult) {
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer store.Close()

	id, err := store.RecordRun(ctx, run, result.Conversions)
	if err != nil {
		logger.Warn().Err(err).Msg("recording history failed")
		return
	}
	logger.Info().Str("run_id", id).Str("db", store.Path()).Msg("run recorded")
}
