package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"atelier/internal/config"
	"atelier/internal/models"
)

const (
	DefaultMediaDir        = "/tmp/atelier/media/designs"
	DefaultMediaBaseURL    = "/media/designs"
	DefaultMaxUploadSizeMB = 10
	mediaDirPermissions    = 0o750
	mediaFilePermissions   = 0o600
)

// UploadImageInput carries one uploaded design image.
type UploadImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// UploadService stores design images and hands back public URLs.
type UploadService struct {
	mediaDir           string
	baseURL            string
	maxUploadSizeBytes int64
}

// NewUploadService creates an upload service from the media settings in cfg.
func NewUploadService(cfg *config.Config) *UploadService {
	mediaDir := DefaultMediaDir
	baseURL := DefaultMediaBaseURL
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.MediaDir != "" {
			mediaDir = cfg.MediaDir
		}
		if cfg.MediaBaseURL != "" {
			baseURL = strings.TrimSuffix(cfg.MediaBaseURL, "/")
		}
		if cfg.MediaMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MediaMaxUploadSizeMB
		}
	}

	return &UploadService{
		mediaDir:           mediaDir,
		baseURL:            baseURL,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Store validates and writes the image, returning its public URL. The media
// directory is created on demand, so a fresh deployment needs no manual setup.
func (s *UploadService) Store(_ context.Context, in UploadImageInput) (string, error) {
	if in.UserID == 0 {
		return "", models.NewAuthRequiredError("Sign in to upload images")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	ext, ok := imageExtensionFor(detectedType)
	if !ok {
		return "", models.NewValidationError("Invalid image type")
	}

	hash := hashUploadContent(in.UserID, in.Content)
	name := hash + ext
	fullPath := filepath.Join(s.mediaDir, name)

	if err := os.MkdirAll(s.mediaDir, mediaDirPermissions); err != nil {
		return "", models.NewUploadFailedError(err)
	}
	if err := os.WriteFile(fullPath, in.Content, mediaFilePermissions); err != nil {
		return "", models.NewUploadFailedError(err)
	}

	return s.baseURL + "/" + name, nil
}

// MediaDir returns the directory served under the public media base URL.
func (s *UploadService) MediaDir() string {
	return s.mediaDir
}

func imageExtensionFor(contentType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}

func hashUploadContent(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
