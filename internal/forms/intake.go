package forms

import (
	"fmt"
	"path/filepath"
	"strings"
)

const MaxFileSizeBytes = 5 * 1024 * 1024

var allowedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// Attachment is an accepted file held in memory until submission uploads it.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CheckFile enforces the intake rules before a file is accepted into a slot:
// extension allow-list and size cap. The returned error message is shown
// next to the upload control.
func CheckFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))

	allowed := false
	for _, candidate := range allowedExtensions {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("invalid file type, allowed: %s", strings.Join(allowedExtensions, ", "))
	}

	if size > MaxFileSizeBytes {
		return fmt.Errorf("file too large, max size: %dMB", MaxFileSizeBytes/(1024*1024))
	}

	return nil
}

// ContentTypeForExt maps an accepted extension to the upload content type.
func ContentTypeForExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}
