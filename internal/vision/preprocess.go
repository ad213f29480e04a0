package vision

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// InputSize is the square resolution the classifier expects.
const InputSize = 224

// TensorLen is the flattened RGB tensor length.
const TensorLen = InputSize * InputSize * 3

// AllowedExtension reports whether the uploaded filename has a supported
// image extension. Checked before any decoding happens.
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Preprocess decodes an image, resizes it to InputSize x InputSize and
// scales each RGB channel to [-1, 1] (MobileNetV2 preprocessing).
func Preprocess(r io.Reader) ([]float32, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	tensor := make([]float32, 0, TensorLen)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			offset := dst.PixOffset(x, y)
			r8 := dst.Pix[offset]
			g8 := dst.Pix[offset+1]
			b8 := dst.Pix[offset+2]
			tensor = append(tensor,
				float32(r8)/127.5-1,
				float32(g8)/127.5-1,
				float32(b8)/127.5-1,
			)
		}
	}
	return tensor, nil
}
