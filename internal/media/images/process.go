package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize is the target size for BlurHash computation.
// BlurHash doesn't need high resolution - a small thumbnail produces nearly
// identical results while cutting computation to milliseconds.
const blurHashSize = 64

// MaxUploadBytes caps accepted upload payloads at 10 MiB.
const MaxUploadBytes = 10 << 20

// Validate decodes the uploaded payload and reports its format.
// Accepts JPEG, PNG, GIF, and WebP; anything else (or anything oversized)
// is rejected before touching storage.
func Validate(data []byte) (format string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", MaxUploadBytes)
	}

	_, format, err = image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return format, nil
}

// ComputeBlurHash generates a BlurHash placeholder string from image data.
// Uses 4x3 components for a good balance of size (~20-30 chars) and detail.
func ComputeBlurHash(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Resize to a small thumbnail first; BlurHash is a low-resolution
	// placeholder and doesn't benefit from the full image.
	thumbnail := resizeForBlurHash(img)

	hash, err := blurhash.Encode(4, 3, thumbnail)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}

// resizeForBlurHash creates a small thumbnail suitable for BlurHash
// computation. Nearest-neighbor scaling is fast and sufficient here.
func resizeForBlurHash(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= blurHashSize && h <= blurHashSize {
		return src
	}

	// Preserve aspect ratio within the target box.
	dw, dh := blurHashSize, blurHashSize
	if w > h {
		dh = h * blurHashSize / w
	} else {
		dw = w * blurHashSize / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		srcY := bounds.Min.Y + y*h/dh
		for x := 0; x < dw; x++ {
			srcX := bounds.Min.X + x*w/dw
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}
	return dst
}
