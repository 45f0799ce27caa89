package classifier

import (
	"strings"

	"github.com/mrhapile/zip2ipa/pkg/types"
)

// Classify matches every manifest entry against table.
//
// Matching is a case-insensitive substring test against the whole entry
// path, not just its last segment or suffix, so "NotInfo.plist.bak" counts
// as an Info.plist. Each entry is attributed to at most one marker: the
// first one in table order. Matches keep the manifest's entry order.
func Classify(manifest *types.ArchiveManifest, table types.MarkerTable) types.ClassificationResult {
	result := types.ClassificationResult{
		Matches:  []types.MarkerMatch{},
		ByMarker: map[string][]string{},
	}

	tokens := make([]string, table.Len())
	for i := range tokens {
		tokens[i] = lowerASCII(table.At(i).Token)
	}

	if manifest != nil {
		for _, entry := range manifest.Entries {
			lowered := lowerASCII(entry)
			for i, token := range tokens {
				if !strings.Contains(lowered, token) {
					continue
				}
				marker := table.At(i)
				result.Matches = append(result.Matches, types.MarkerMatch{
					Path:     entry,
					Category: marker.Category,
					Marker:   marker.Token,
				})
				result.ByMarker[marker.Token] = append(result.ByMarker[marker.Token], entry)
				break
			}
		}
	}

	result.HasProject = len(result.Matches) > 0
	result.Status = types.StatusFor(result.HasProject)
	return result
}

// lowerASCII folds only A-Z so results do not depend on Unicode case tables.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
