package present

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
)

// upperHalf draws the top pixel of a cell in the foreground colour and the
// bottom one in the background colour.
const upperHalf = '▀'

// Terminal renders frames as truecolor half blocks, two pixels per cell.
type Terminal struct {
	screen tcell.Screen
	sky    color.RGBA
	scaled *image.RGBA
}

// NewTerminal presents onto an initialized screen. Transparent pixels are
// shown as sky.
func NewTerminal(screen tcell.Screen, sky color.RGBA) *Terminal {
	return &Terminal{screen: screen, sky: sky}
}

// Present downscales buf to the screen and shows it.
func (t *Terminal) Present(buf *framebuffer.Buffer) error {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	dw, dh := cols, rows*2
	if t.scaled == nil || t.scaled.Bounds().Dx() != dw || t.scaled.Bounds().Dy() != dh {
		t.scaled = image.NewRGBA(image.Rect(0, 0, dw, dh))
	}
	src := buf.Image()
	draw.NearestNeighbor.Scale(t.scaled, t.scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := t.cellColor(x, y*2)
			bottom := t.cellColor(x, y*2+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) cellColor(x, y int) tcell.Color {
	c := t.scaled.RGBAAt(x, y)
	if c.A == 0 {
		c = t.sky
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close releases the screen.
func (t *Terminal) Close() {
	t.screen.Fini()
}
