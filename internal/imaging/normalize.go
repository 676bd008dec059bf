package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// TargetShortestSide is the pixel size every stored photo is normalized to.
	TargetShortestSide = 1920
	jpegQuality        = 90
)

// Normalizer re-encodes raw image bytes so that the shortest side matches a
// fixed target, preserving aspect ratio. Output is always JPEG.
type Normalizer struct {
	target int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{target: TargetShortestSide}
}

func (n *Normalizer) Normalize(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	shortest := width
	if height < shortest {
		shortest = height
	}

	if shortest != n.target {
		scale := float64(n.target) / float64(shortest)
		dst := image.NewRGBA(image.Rect(0, 0,
			int(float64(width)*scale), int(float64(height)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
