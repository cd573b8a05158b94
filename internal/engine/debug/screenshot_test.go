package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "voxel")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	first, err := sc.CaptureFrame(img)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	second, err := sc.CaptureFrame(img)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if first == second {
		t.Errorf("captures in the same second share a name: %s", first)
	}
	if want := filepath.Join(dir, "voxel_2024-05-01_12-00-00_000.png"); first != want {
		t.Errorf("path = %s, want %s", first, want)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	// Top row must stay on top.
	if r, _, _, _ := decoded.At(1, 0).RGBA(); r != 0xffff {
		t.Errorf("pixel (1,0) red = %x, frame was flipped", r)
	}
}

func TestCaptureEmptyFrame(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFrame(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestFlatten(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{G: 200, A: 255})

	sky := color.RGBA{R: 10, G: 20, B: 30}
	out := Flatten(img, sky)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{G: 200, A: 255}) {
		t.Errorf("terrain pixel = %v", got)
	}
	if got := out.RGBAAt(1, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("sky pixel = %v", got)
	}
}
