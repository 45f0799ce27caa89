package bundler

import (
	"github.com/mrhapile/zip2ipa/pkg/types"
)

const (
	NoProjectWarning = "archive does not contain recognizable Xcode project files; proceeding with conversion anyway"
	readyMessage     = "Xcode project structure detected; ready to convert"
)

// Decide composes the outcome of converting a scanned archive to outputPath.
// Conversion is never blocked by classification: an archive without markers
// still proceeds, with Warning set.
func Decide(manifest *types.ArchiveManifest, classification types.ClassificationResult, outputPath string) types.ConversionOutcome {
	outcome := types.ConversionOutcome{
		Success:        true,
		OutputPath:     outputPath,
		EntryCount:     manifest.EntryCount(),
		DirectoryCount: manifest.DirectoryCount(),
		Classification: classification,
		Message:        readyMessage,
	}
	if !classification.HasProject {
		outcome.Warning = NoProjectWarning
		outcome.Message = "Warning: " + NoProjectWarning
	}
	return outcome
}
