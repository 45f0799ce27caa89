package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
)

// multipart parts larger than this spill to disk instead of memory.
const maxMemoryBytes = 32 << 20

// upload is a request-scoped copy of an uploaded archive.
type upload struct {
	id   string
	name string // sanitized client file name
	path string
	req  *http.Request
}

func (u *upload) cleanup() {
	_ = os.Remove(u.path)
	if u.req.MultipartForm != nil {
		_ = u.req.MultipartForm.RemoveAll()
	}
}

// receiveUpload stores the "file" form field under the upload directory.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var sizeErr *http.MaxBytesError
		if errors.As(err, &sizeErr) {
			return nil, err
		}
		return nil, &bundler.InvalidInputError{Reason: "malformed upload", Err: err}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &bundler.InvalidInputError{Reason: "no file uploaded", Err: err}
	}
	defer file.Close()

	name := bundler.SanitizeFilename(header.Filename)
	if !bundler.HasAllowedExtension(name, s.cfg.Conversion.AllowedExtensions) {
		return nil, &bundler.InvalidInputError{Path: header.Filename, Reason: "only ZIP files are accepted"}
	}

	dir := s.uploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	up := &upload{
		id:   uuid.NewString(),
		name: name,
		req:  r,
	}
	up.path = filepath.Join(dir, up.id+"-"+name)

	out, err := os.Create(up.path)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		up.cleanup()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := out.Close(); err != nil {
		up.cleanup()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Debug("upload received", "id", up.id, "name", name, "size", header.Size)
	return up, nil
}
