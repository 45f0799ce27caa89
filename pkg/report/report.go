package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mrhapile/zip2ipa/pkg/types"
	yaml "gopkg.in/yaml.v2"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Write renders v to w. v is expected to be a *types.DetectionReport or a
// *types.ConversionOutcome for the text format; json and yaml accept anything.
func Write(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		return writeText(w, v)
	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeText(w io.Writer, v interface{}) error {
	var b strings.Builder
	switch r := v.(type) {
	case *types.ConversionOutcome:
		mark := "✓"
		if !r.Success {
			mark = "✗"
		}
		fmt.Fprintf(&b, "\n%s %s\n", mark, r.Message)
		if r.Warning != "" {
			fmt.Fprintf(&b, "  Warning: %s\n", r.Warning)
		}
		fmt.Fprintf(&b, "  Files detected: %d\n", r.EntryCount)
		fmt.Fprintf(&b, "  Directories detected: %d\n", r.DirectoryCount)
		writeClassification(&b, r.Classification)
	case *types.DetectionReport:
		fmt.Fprintf(&b, "Files detected: %d\n", len(r.Entries))
		fmt.Fprintf(&b, "Directories detected: %d\n", len(r.Directories))
		writeClassification(&b, r.Classification)
		for _, m := range r.Classification.Matches {
			fmt.Fprintf(&b, "  - %s (%s)\n", m.Path, m.Category)
		}
	default:
		return fmt.Errorf("text format does not support %T", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeClassification(b *strings.Builder, c types.ClassificationResult) {
	project := "No"
	if c.HasProject {
		project = "Yes ✓"
	}
	fmt.Fprintf(b, "  Xcode Project: %s (%s)\n", project, c.Status)

	markers := make([]string, 0, len(c.ByMarker))
	for m := range c.ByMarker {
		markers = append(markers, m)
	}
	sort.Strings(markers)
	for _, m := range markers {
		fmt.Fprintf(b, "    %s: %d file(s)\n", m, len(c.ByMarker[m]))
	}
}
