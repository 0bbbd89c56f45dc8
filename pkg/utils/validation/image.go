// pkg/utils/validation/image.go
package validation

import (
	"errors"
	"mime/multipart"
	"strings"
)

var (
	ErrFileSize     = errors.New("File too large. Maximum size is 10MB")
	ErrFileType     = errors.New("Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	ErrFileRequired = errors.New("No image file provided")
)

const MaxImageSize = 10 * 1024 * 1024 // 10MB

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage checks the declared MIME type and the size. The content itself
// is not sniffed.
func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	contentType := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !AllowedImageTypes[contentType] {
		return ErrFileType
	}

	if file.Size > MaxImageSize {
		return ErrFileSize
	}

	return nil
}
