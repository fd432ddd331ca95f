package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxUploadBytes = 2 << 20 // 2MB raw upload cap
	maxEdge        = 512     // profile images are square-ish thumbnails
	webpQuality    = 80
)

// NormalizeProfileImage decodes an uploaded image, resizes it to fit
// maxEdge and re-encodes as webp. The result is what gets pushed to
// the identity provider's profile-image endpoint.
func NormalizeProfileImage(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	if fileHeader.Size > maxUploadBytes {
		return nil, "", fmt.Errorf("image exceeds %dKB", maxUploadBytes/1024)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > maxUploadBytes {
		return nil, "", fmt.Errorf("image exceeds %dKB", maxUploadBytes/1024)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), "image/webp", nil
}
