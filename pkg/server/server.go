package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
	"github.com/mrhapile/zip2ipa/pkg/config"
	"github.com/mrhapile/zip2ipa/pkg/scanner"
	"github.com/mrhapile/zip2ipa/pkg/types"
)

// Server is the HTTP transport for detection and conversion.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   []bundler.Option
}

// New creates a server. Every request gets its own upload, manifest and
// result; only the marker table is shared, and it is read-only.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		opts: []bundler.Option{
			bundler.WithMarkers(cfg.MarkerTable()),
			bundler.WithLogger(logger),
			bundler.WithSuffix(cfg.Conversion.Suffix),
			bundler.WithAllowedExtensions(cfg.Conversion.AllowedExtensions...),
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	mux.HandleFunc("POST /api/detect", s.handleDetect)
	mux.HandleFunc("POST /api/convert", s.handleConvertJSON)
	mux.HandleFunc("POST /convert", s.handleConvertDownload)
	mux.HandleFunc("GET /download/{id}/{name}", s.handleDownload)

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type convertResponse struct {
	Success        bool                       `json:"success"`
	FileCount      int                        `json:"file_count"`
	DirectoryCount int                        `json:"directory_count"`
	Detection      types.ClassificationResult `json:"xcode_detection"`
	Message        string                     `json:"message"`
	Warning        string                     `json:"warning,omitempty"`
	DownloadURL    string                     `json:"download_url,omitempty"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	up, err := s.receiveUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer up.cleanup()

	report, err := bundler.Detect(up.path, s.opts...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleConvertJSON(w http.ResponseWriter, r *http.Request) {
	up, err := s.receiveUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer up.cleanup()

	outcome, name, err := s.convert(up)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Success:        outcome.Success,
		FileCount:      outcome.EntryCount,
		DirectoryCount: outcome.DirectoryCount,
		Detection:      outcome.Classification,
		Message:        fmt.Sprintf("Successfully converted '%s' to '%s'", up.name, name),
		Warning:        outcome.Warning,
		DownloadURL:    fmt.Sprintf("/download/%s/%s", up.id, name),
	})
}

func (s *Server) handleConvertDownload(w http.ResponseWriter, r *http.Request) {
	up, err := s.receiveUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer up.cleanup()

	outcome, name, err := s.convert(up)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer os.RemoveAll(filepath.Dir(outcome.OutputPath))

	serveArtifact(w, r, outcome.OutputPath, name)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, name := r.PathValue("id"), r.PathValue("name")
	if _, err := uuid.Parse(id); err != nil || name != bundler.SanitizeFilename(name) {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
		return
	}
	path := filepath.Join(s.artifactDir(id), name)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
		return
	}
	serveArtifact(w, r, path, name)
}

// convert writes the artifact to <uploadDir>/zip2ipa-<id>/<name>.
func (s *Server) convert(up *upload) (*types.ConversionOutcome, string, error) {
	name := bundler.OutputName(up.name, s.cfg.Conversion.Suffix)
	outcome, err := bundler.Convert(up.path, filepath.Join(s.artifactDir(up.id), name), s.opts...)
	if err != nil {
		return nil, "", err
	}
	return outcome, name, nil
}

func (s *Server) uploadDir() string {
	if s.cfg.Server.UploadDir != "" {
		return s.cfg.Server.UploadDir
	}
	return os.TempDir()
}

func (s *Server) artifactDir(id string) string {
	return filepath.Join(s.uploadDir(), "zip2ipa-"+id)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var (
		inputErr *bundler.InvalidInputError
		readErr  *scanner.ArchiveReadError
		sizeErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	case errors.As(err, &readErr):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]any{"success": false, "message": err.Error()})
}

func serveArtifact(w http.ResponseWriter, r *http.Request, path, name string) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	b, err := json.Marshal(v)
	if err != nil {
		_, _ = w.Write([]byte(`{"success":false,"message":"failed to marshal json"}`))
		return
	}
	_, _ = w.Write(append(b, '\n'))
}
