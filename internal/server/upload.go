package server

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxFeaturedImageBytes = 5 << 20 // 5MB

// imageExtensions maps accepted sniffed MIME types to the extension used on disk.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// saveFeaturedImage stores an uploaded "featuredImage" multipart file under
// the configured upload directory with a random name. Returns "" when the
// request carries no file. The content is sniffed and decoded rather than
// trusting the client's Content-Type or filename.
func (s *Server) saveFeaturedImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("featuredImage")
	if err != nil {
		return "", nil
	}

	if file.Size > maxFeaturedImageBytes {
		return "", models.NewValidationError("Featured image must be 5MB or smaller")
	}

	src, err := file.Open()
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}

	ext, ok := imageExtensions[http.DetectContentType(content)]
	if !ok {
		return "", models.NewValidationError("Featured image must be a JPEG, PNG, GIF, or WebP image")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return "", models.NewValidationError("Featured image is not a valid image file")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.config.UploadDir, name), content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return name, nil
}
