// Package storage stores uploaded master-data images (variety, item and
// customer photos) and returns the URL the registry records.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte) (string, error)
}

// DriveUploader stores images in a Google Drive folder via a service
// account. Uploaded files are addressed with the uc?id= direct-download URL.
type DriveUploader struct {
	client   *drive.Service
	folderID string
}

// NewDriveUploader creates a Drive uploader from a service account
// credentials file and a destination folder id.
func NewDriveUploader(ctx context.Context, credentialsPath, folderID string) (*DriveUploader, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveUploader{client: client, folderID: folderID}, nil
}

// Upload stores the image in the configured folder.
func (u *DriveUploader) Upload(ctx context.Context, fileName, mimeType string, data []byte) (string, error) {
	meta := &drive.File{
		Name:     sanitizeFileName(fileName),
		MimeType: mimeType,
		Parents:  []string{u.folderID},
	}
	file, err := u.client.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file to drive: %w", err)
	}
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id), nil
}

// LocalUploader stores images under a local directory, served by the HTTP
// server as /uploads. Used when Drive credentials are not configured.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates a local uploader rooted at dir.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the image to disk under a collision-free name.
func (u *LocalUploader) Upload(_ context.Context, fileName, _ string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String()[:8], sanitizeFileName(fileName))
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return u.baseURL + "/" + name, nil
}

// sanitizeFileName strips path separators and whitespace so uploaded names
// cannot escape the upload directory.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
