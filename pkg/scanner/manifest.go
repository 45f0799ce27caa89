package scanner

import (
	"sort"
	"strings"

	"github.com/mrhapile/zip2ipa/pkg/types"
)

// ManifestBuilder accumulates entry names and their parent directories.
type ManifestBuilder struct {
	entries []string
	dirs    map[string]struct{}
}

func NewManifestBuilder(capacity int) *ManifestBuilder {
	return &ManifestBuilder{
		entries: make([]string, 0, capacity),
		dirs:    make(map[string]struct{}),
	}
}

// AddEntry records an entry name. Names containing "/" also record their
// immediate parent: the name with the last "/" and everything after it removed.
func (mb *ManifestBuilder) AddEntry(name string) {
	mb.entries = append(mb.entries, name)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		mb.dirs[name[:i]] = struct{}{}
	}
}

func (mb *ManifestBuilder) Build() *types.ArchiveManifest {
	dirs := make([]string, 0, len(mb.dirs))
	for d := range mb.dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	return &types.ArchiveManifest{
		Entries:     mb.entries,
		Directories: dirs,
	}
}
