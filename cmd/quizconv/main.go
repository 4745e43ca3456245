// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quizconv CLI, which converts
// plain-text quiz transcripts into tab-delimited import files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizconv/internal/history"
	"github.com/pdiddy/quizconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics to stderr; configured in PersistentPreRunE.
var logger = zerolog.Nop()

// rootCmd is the base command for the quizconv CLI.
var rootCmd = &cobra.Command{
	Use:   "quizconv",
	Short: "Convert plain-text quiz transcripts into quiz import files",
	Long: `quizconv reads plain-text quiz transcripts (sections of numbered questions
with lettered answer choices, followed by an ANSWER KEY) and writes one
tab-delimited import file per transcript.

Use convert to process a directory of transcripts, inspect to see how a
single transcript is parsed, and history to review past conversion runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quizconv.yaml or ~/.config/quizconv/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("history-db", "", "history database file (default "+history.DefaultDBPath+")")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("history.db_path", rootCmd.PersistentFlags().Lookup("history-db"))

	viper.SetDefault("convert.input_dir", ".")
	viper.SetDefault("convert.output_dir", "output")
	viper.SetDefault("convert.clean", true)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", history.DefaultDBPath)
	viper.SetDefault("history.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quizconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quizconv"))
		}
	}

	viper.SetEnvPrefix("QUIZCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
			os.Exit(1)
		}
	}
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a console logger on stderr at the named level.
func newLogger(level string) (zerolog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
