package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	IPAExtension = ".ipa"
	ZipExtension = ".zip"
)

// DefaultAllowedExtensions lists the input extensions accepted by default.
var DefaultAllowedExtensions = []string{ZipExtension}

// InvalidInputError reports an input rejected before it reaches the scanner.
type InvalidInputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %q: %s", e.Path, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// OutputPath forces suffix onto dest. A dest that already ends with suffix
// (in any letter case) is returned unchanged; otherwise suffix is appended,
// so "app.zip" becomes "app.zip.ipa".
func OutputPath(dest, suffix string) string {
	if hasSuffixFold(dest, suffix) {
		return dest
	}
	return dest + suffix
}

// OutputName derives the artifact name for an uploaded archive: the base
// name with a trailing ".zip" removed, then the suffix forced on.
func OutputName(upload, suffix string) string {
	base := filepath.Base(upload)
	if hasSuffixFold(base, ZipExtension) {
		base = base[:len(base)-len(ZipExtension)]
	}
	return OutputPath(base, suffix)
}

// HasAllowedExtension reports whether name ends with one of the extensions.
func HasAllowedExtension(name string, allowed []string) bool {
	for _, ext := range allowed {
		if hasSuffixFold(name, ext) {
			return true
		}
	}
	return false
}

// ValidateInput checks that path is an existing regular file with an allowed extension.
func ValidateInput(path string, allowed []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvalidInputError{Path: path, Reason: "file does not exist", Err: err}
	}
	if info.IsDir() {
		return &InvalidInputError{Path: path, Reason: "is a directory"}
	}
	if !HasAllowedExtension(path, allowed) {
		return &InvalidInputError{
			Path:   path,
			Reason: fmt.Sprintf("extension not allowed (want %s)", strings.Join(allowed, ", ")),
		}
	}
	return nil
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
