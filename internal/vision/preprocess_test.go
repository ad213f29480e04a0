package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"leaf.jpg", true},
		{"leaf.JPEG", true},
		{"leaf.png", true},
		{"leaf.gif", false},
		{"leaf.txt", false},
		{"leaf", false},
	}

	for _, tt := range tests {
		if got := AllowedExtension(tt.filename); got != tt.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestPreprocess(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 255, G: 0, B: 127, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	tensor, err := Preprocess(&buf)
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}
	if len(tensor) != TensorLen {
		t.Fatalf("tensor length = %d, want %d", len(tensor), TensorLen)
	}
	for i, v := range tensor {
		if v < -1 || v > 1 {
			t.Fatalf("tensor[%d] = %f outside [-1, 1]", i, v)
		}
	}
	// Red channel of a pure-red-ish image maps to 1.
	if tensor[0] != 1 {
		t.Errorf("tensor[0] = %f, want 1", tensor[0])
	}
}

func TestPreprocessRejectsGarbage(t *testing.T) {
	if _, err := Preprocess(bytes.NewBufferString("not an image")); err == nil {
		t.Error("expected a decode error")
	}
}
