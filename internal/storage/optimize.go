package storage

import (
	"bytes"
	"fmt"
	
	"github.com/disintegration/imaging"
)

const (
	maxImageDimension = 1600
	jpegQuality       = 80
)

// OptimizeImage decodes any supported image, fixes its EXIF orientation,
// shrinks it to fit maxImageDimension and re-encodes it as JPEG.
// Smaller images are only re-encoded.
func OptimizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	
	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}
	
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	
	return buf.Bytes(), nil
}
