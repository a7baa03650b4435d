package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Uploader stores product images under Dir with generated names.
type Uploader struct {
	Dir      string
	MaxBytes int64
}

// Check returns a violation code when fh cannot be accepted, "" otherwise.
func (u Uploader) Check(fh *multipart.FileHeader) string {
	if !imageExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		return validation.CodeUnsupportedType
	}
	if u.MaxBytes > 0 && fh.Size > u.MaxBytes {
		return validation.CodeTooLarge
	}
	return ""
}

// Save writes the file as <uuid><ext> and returns that name.
func (u Uploader) Save(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(u.Dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}
