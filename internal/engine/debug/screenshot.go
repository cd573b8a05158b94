// Package debug provides debug capture utilities for rendered frames.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	seq       int
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFrame saves a frame as PNG and returns the file path. The frame is
// stored top row first, as the renderer produces it.
func (sc *ScreenshotCapture) CaptureFrame(img image.Image) (string, error) {
	if img.Bounds().Empty() {
		return "", fmt.Errorf("empty frame")
	}
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	if err := SavePNG(filename, img); err != nil {
		return "", err
	}
	sc.seq++
	return filename, nil
}

// GenerateFilename returns the path the next capture will use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%03d.png", sc.prefix, timestamp, sc.seq)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// Flatten composites img over an opaque background so pixels the terrain
// never reached show as sky instead of transparency.
func Flatten(img image.Image, bg color.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	bg.A = 255
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
