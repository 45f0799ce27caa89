package bundler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mrhapile/zip2ipa/pkg/classifier"
	"github.com/mrhapile/zip2ipa/pkg/scanner"
	"github.com/mrhapile/zip2ipa/pkg/types"
)

// Option configures detection and conversion.
type Option func(*config)

type config struct {
	markers types.MarkerTable
	copier  Copier
	logger  *slog.Logger
	suffix  string
	allowed []string
}

// WithMarkers replaces the default marker table.
func WithMarkers(table types.MarkerTable) Option {
	return func(c *config) {
		c.markers = table
	}
}

// WithCopier sets the primitive used to duplicate the archive bytes.
func WithCopier(cp Copier) Option {
	return func(c *config) {
		c.copier = cp
	}
}

// WithLogger sets the logger used for operation summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithSuffix sets the extension forced onto the output path.
func WithSuffix(suffix string) Option {
	return func(c *config) {
		c.suffix = suffix
	}
}

// WithAllowedExtensions sets the input extensions Convert accepts.
func WithAllowedExtensions(exts ...string) Option {
	return func(c *config) {
		c.allowed = exts
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		markers: classifier.DefaultMarkers,
		copier:  FileCopier{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		suffix:  IPAExtension,
		allowed: DefaultAllowedExtensions,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Detect scans the archive at path and classifies its entries without
// producing any output file.
func Detect(path string, opts ...Option) (*types.DetectionReport, error) {
	cfg := newConfig(opts)

	manifest, err := scanner.Scan(path)
	if err != nil {
		cfg.logger.Error("archive scan failed", "path", path, "error", err)
		return nil, err
	}
	classification := classifier.Classify(manifest, cfg.markers)

	cfg.logger.Info("archive inspected",
		"path", path,
		"entries", manifest.EntryCount(),
		"directories", manifest.DirectoryCount(),
		"matches", len(classification.Matches),
		"status", classification.Status,
	)

	return &types.DetectionReport{
		Entries:        manifest.Entries,
		Directories:    manifest.Directories,
		Classification: classification,
	}, nil
}

// Convert copies the archive at input to output, forcing the configured
// suffix onto output. Unreadable archives fail before any outcome is built.
// A failed copy returns the outcome with Success unset alongside the error.
func Convert(input, output string, opts ...Option) (*types.ConversionOutcome, error) {
	cfg := newConfig(opts)

	if err := ValidateInput(input, cfg.allowed); err != nil {
		return nil, err
	}

	manifest, err := scanner.Scan(input)
	if err != nil {
		cfg.logger.Error("archive scan failed", "path", input, "error", err)
		return nil, err
	}
	classification := classifier.Classify(manifest, cfg.markers)

	outcome := Decide(manifest, classification, OutputPath(output, cfg.suffix))
	outcome.InputPath = input
	if outcome.Warning != "" {
		cfg.logger.Warn("no project markers found", "path", input)
	}

	if err := cfg.copier.Copy(input, outcome.OutputPath); err != nil {
		outcome.Success = false
		outcome.Message = fmt.Sprintf("Error during conversion: %v", err)
		cfg.logger.Error("conversion failed", "input", input, "output", outcome.OutputPath, "error", err)
		return &outcome, fmt.Errorf("failed to convert %s: %w", input, err)
	}

	outcome.Message = fmt.Sprintf("Successfully converted '%s' to '%s'", input, outcome.OutputPath)
	cfg.logger.Info("archive converted",
		"input", input,
		"output", outcome.OutputPath,
		"entries", outcome.EntryCount,
		"directories", outcome.DirectoryCount,
		"has_project", classification.HasProject,
	)
	return &outcome, nil
}
