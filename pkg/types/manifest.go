package types

// ArchiveManifest describes the entries listed in an archive's central directory.
type ArchiveManifest struct {
	// Entries lists every entry path in the archive's native listing order.
	Entries []string `json:"entries" yaml:"entries"`

	// Directories holds the unique parent directories of the entries, sorted.
	// An entry contributes only its immediate parent (the path up to the last "/").
	Directories []string `json:"directories" yaml:"directories"`
}

// EntryCount returns the number of archive entries.
func (m *ArchiveManifest) EntryCount() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// DirectoryCount returns the number of derived directories.
func (m *ArchiveManifest) DirectoryCount() int {
	if m == nil {
		return 0
	}
	return len(m.Directories)
}
