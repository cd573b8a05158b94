package framebuffer

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewSize(t *testing.T) {
	b, err := New(320, 200)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() != 320*200 {
		t.Errorf("Len() = %d, want %d", b.Len(), 320*200)
	}
	w, h := b.Size()
	if w != 320 || h != 200 {
		t.Errorf("Size() = %dx%d", w, h)
	}
	if b.Image().Bounds().Dx() != 320 || b.Image().Bounds().Dy() != 200 {
		t.Errorf("image bounds = %v", b.Image().Bounds())
	}
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 10},
		{"too large", MaxPixels, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h); !errors.Is(err, ErrAllocation) {
				t.Errorf("New(%d, %d) error = %v, want ErrAllocation", tt.w, tt.h, err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	b, _ := New(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			b.Set(x, y, color.RGBA{R: 9, G: 9, B: 9, A: 255})
		}
	}
	b.Clear()
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := b.At(x, y); got != Transparent {
				t.Fatalf("pixel (%d,%d) = %v after Clear", x, y, got)
			}
		}
	}
}

func TestFillSpanClamps(t *testing.T) {
	b, _ := New(3, 5)
	red := color.RGBA{R: 255, A: 255}

	b.FillSpan(1, -3, 2, red)
	b.FillSpan(2, 4, 99, red)
	b.FillSpan(0, 3, 3, red) // empty
	b.FillSpan(7, 0, 5, red) // column out of range
	b.FillSpan(0, 4, 1, red) // inverted

	want := map[[2]int]bool{{1, 0}: true, {1, 1}: true, {2, 4}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			got := b.At(x, y)
			if want[[2]int{x, y}] {
				if got != red {
					t.Errorf("pixel (%d,%d) = %v, want red", x, y, got)
				}
			} else if got != Transparent {
				t.Errorf("pixel (%d,%d) = %v, want transparent", x, y, got)
			}
		}
	}
}

func TestRelease(t *testing.T) {
	b, _ := New(8, 8)
	b.Release()
	if b.Len() != 0 {
		t.Errorf("Len() after Release = %d", b.Len())
	}
	b.FillSpan(0, 0, 8, color.RGBA{A: 255}) // must not panic
}
