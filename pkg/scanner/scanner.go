package scanner

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/mrhapile/zip2ipa/pkg/types"
)

// ArchiveReadError reports an archive that could not be opened or whose
// central directory is malformed or truncated.
type ArchiveReadError struct {
	Path string
	Err  error
}

func (e *ArchiveReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error reading ZIP archive: %v", e.Err)
	}
	return fmt.Sprintf("error reading ZIP archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveReadError) Unwrap() error {
	return e.Err
}

// Scan lists the entries of the ZIP archive at path.
// Only the central directory is read; entry bodies are never decompressed.
func Scan(path string) (*types.ArchiveManifest, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveReadError{Path: path, Err: err}
	}
	defer rc.Close()

	return buildManifest(&rc.Reader), nil
}

// ScanReader is Scan for an archive that is already open.
func ScanReader(r io.ReaderAt, size int64) (*types.ArchiveManifest, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ArchiveReadError{Err: err}
	}
	return buildManifest(zr), nil
}

func buildManifest(zr *zip.Reader) *types.ArchiveManifest {
	mb := NewManifestBuilder(len(zr.File))
	for _, f := range zr.File {
		mb.AddEntry(f.Name)
	}
	return mb.Build()
}
