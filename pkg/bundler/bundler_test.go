package bundler_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
	"github.com/mrhapile/zip2ipa/pkg/scanner"
	"github.com/mrhapile/zip2ipa/pkg/types"
)

func writeZip(t *testing.T, dir, name string, entries ...string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e)
		require.NoError(t, err)
		_, err = w.Write([]byte(e))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

type failingCopier struct{ err error }

func (f failingCopier) Copy(src, dst string) error { return f.err }

type recordingCopier struct{ calls int }

func (r *recordingCopier) Copy(src, dst string) error {
	r.calls++
	return nil
}

func TestConvertProject(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "MyApp.zip", "MyApp.xcodeproj/project.pbxproj", "MyApp/Info.plist", "README.md")
	output := filepath.Join(dir, "out", "MyApp.ipa")

	outcome, err := bundler.Convert(input, output)
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, output, outcome.OutputPath)
	assert.Equal(t, input, outcome.InputPath)
	assert.Equal(t, 3, outcome.EntryCount)
	assert.Equal(t, 2, outcome.DirectoryCount)
	assert.True(t, outcome.Classification.HasProject)
	assert.Empty(t, outcome.Warning)
	assert.Contains(t, outcome.Message, "Successfully converted")

	want, err := os.ReadFile(input)
	require.NoError(t, err)
	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConvertWithoutProjectStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "plain.zip", "readme.txt", "src/main.c")

	outcome, err := bundler.Convert(input, filepath.Join(dir, "plain.ipa"))
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.False(t, outcome.Classification.HasProject)
	assert.Equal(t, types.StatusNotAProject, outcome.Classification.Status)
	assert.Equal(t, bundler.NoProjectWarning, outcome.Warning)
	assert.FileExists(t, outcome.OutputPath)
}

func TestConvertAppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "app.zip", "Podfile")

	outcome, err := bundler.Convert(input, filepath.Join(dir, "My Build.v2"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "My Build.v2.ipa"), outcome.OutputPath)
	assert.FileExists(t, outcome.OutputPath)
}

func TestConvertMalformedArchive(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(input, []byte("PK\x03\x04truncated"), 0644))
	cp := &recordingCopier{}

	outcome, err := bundler.Convert(input, filepath.Join(dir, "broken.ipa"), bundler.WithCopier(cp))
	assert.Nil(t, outcome)

	var readErr *scanner.ArchiveReadError
	require.True(t, errors.As(err, &readErr))
	assert.Zero(t, cp.calls)
	assert.NoFileExists(t, filepath.Join(dir, "broken.ipa"))
}

func TestConvertRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	notZip := filepath.Join(dir, "archive.tar")
	require.NoError(t, os.WriteFile(notZip, []byte("x"), 0644))

	cases := map[string]string{
		"missing":   filepath.Join(dir, "missing.zip"),
		"directory": dir,
		"extension": notZip,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := bundler.Convert(input, filepath.Join(dir, "out.ipa"))
			var inputErr *bundler.InvalidInputError
			assert.True(t, errors.As(err, &inputErr))
		})
	}
}

func TestConvertAllowedExtensionsOption(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "bundle.xcarchive.zip", "Products/Info.plist")
	renamed := filepath.Join(dir, "bundle.pkg")
	require.NoError(t, os.Rename(input, renamed))

	outcome, err := bundler.Convert(renamed, filepath.Join(dir, "bundle"), bundler.WithAllowedExtensions(".pkg"))
	require.NoError(t, err)
	assert.True(t, outcome.Classification.HasProject)
}

func TestConvertCopyFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "app.zip", "App.xcworkspace/contents.xcworkspacedata")
	copyErr := errors.New("disk full")

	outcome, err := bundler.Convert(input, filepath.Join(dir, "app"), bundler.WithCopier(failingCopier{err: copyErr}))
	require.ErrorIs(t, err, copyErr)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "disk full")
}

func TestConvertCustomSuffixAndMarkers(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "lib.zip", "Package.swift")
	table := types.NewMarkerTable(types.Marker{Token: "Package.swift", Category: "Swift Package"})

	outcome, err := bundler.Convert(input, filepath.Join(dir, "lib"),
		bundler.WithMarkers(table),
		bundler.WithSuffix(".bin"),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lib.bin"), outcome.OutputPath)
	assert.True(t, outcome.Classification.HasProject)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	input := writeZip(t, dir, "app.zip", "App/Main.storyboard", "App/AppDelegate.swift")
	cp := &recordingCopier{}

	report, err := bundler.Detect(input, bundler.WithCopier(cp))
	require.NoError(t, err)

	assert.Equal(t, []string{"App/Main.storyboard", "App/AppDelegate.swift"}, report.Entries)
	assert.Equal(t, []string{"App"}, report.Directories)
	assert.True(t, report.Classification.HasProject)
	assert.Zero(t, cp.calls)
}

func TestDetectMalformedArchive(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(input, []byte("nope"), 0644))

	report, err := bundler.Detect(input)
	assert.Nil(t, report)
	var readErr *scanner.ArchiveReadError
	assert.True(t, errors.As(err, &readErr))
}
