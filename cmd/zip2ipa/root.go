package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
	"github.com/mrhapile/zip2ipa/pkg/config"
	"github.com/mrhapile/zip2ipa/pkg/logging"
	"github.com/mrhapile/zip2ipa/pkg/report"
)

var (
	configPath   string
	outputFormat string
	logLevel     string

	appConfig *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "zip2ipa",
	Short: "Convert ZIP archives of Xcode projects to IPA files",
	Long: `zip2ipa inspects a ZIP archive, reports whether it looks like an Xcode
project (project bundles, workspaces, Info.plist, asset catalogs, Interface
Builder files, CocoaPods and Carthage manifests) and writes a byte-identical
copy of it with the .ipa extension.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("zip2ipa version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./zip2ipa.{yaml,json,toml})")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", report.FormatText, "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	appConfig = cfg
	logger, logCloser = logging.New(cfg.Logging)
	return nil
}

// bundlerOptions maps the loaded configuration onto conversion options.
func bundlerOptions() []bundler.Option {
	return []bundler.Option{
		bundler.WithMarkers(appConfig.MarkerTable()),
		bundler.WithLogger(logger),
		bundler.WithSuffix(appConfig.Conversion.Suffix),
		bundler.WithAllowedExtensions(appConfig.Conversion.AllowedExtensions...),
	}
}
