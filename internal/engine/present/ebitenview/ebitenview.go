//go:build ebiten

// Package ebitenview presents frames inside an ebiten game loop.
package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
	"github.com/Faultbox/voxel-space/internal/engine/present"
)

var _ present.Presenter = (*Presenter)(nil)

// Presenter keeps the last presented frame in an ebiten image and draws it
// scaled onto the screen from Draw.
type Presenter struct {
	img        *ebiten.Image
	skyImg     *ebiten.Image
	w, h       int
	sky        color.RGBA
	keepAspect bool
}

// New creates a presenter. Transparent pixels show sky.
func New(sky color.RGBA, keepAspect bool) *Presenter {
	return &Presenter{sky: sky, keepAspect: keepAspect}
}

// Present uploads buf. It must be called from the ebiten Update or Draw
// goroutine.
func (p *Presenter) Present(buf *framebuffer.Buffer) error {
	w, h := buf.Size()
	if p.img == nil || w != p.w || h != p.h {
		if p.img != nil {
			p.img.Deallocate()
		}
		p.img = ebiten.NewImage(w, h)
		p.w, p.h = w, h
	}
	p.img.WritePixels(buf.Pix())
	return nil
}

// Draw blits the last frame scaled to the screen.
func (p *Presenter) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if p.img == nil {
		return
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	dst := present.Fit(p.w, p.h, sw, sh, p.keepAspect)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.W)/float64(p.w), float64(dst.H)/float64(p.h))
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))

	if p.skyImg == nil {
		p.skyImg = ebiten.NewImage(1, 1)
		p.skyImg.Fill(p.sky)
	}
	skyOp := &ebiten.DrawImageOptions{}
	skyOp.GeoM.Scale(float64(dst.W), float64(dst.H))
	skyOp.GeoM.Translate(float64(dst.X), float64(dst.Y))
	screen.DrawImage(p.skyImg, skyOp)

	screen.DrawImage(p.img, op)
}

// Close releases the frame image.
func (p *Presenter) Close() {
	if p.img != nil {
		p.img.Deallocate()
		p.img = nil
	}
	if p.skyImg != nil {
		p.skyImg.Deallocate()
		p.skyImg = nil
	}
}

// Game adapts a per-tick step function to ebiten.Game. Step renders and
// presents a frame; returning ebiten.Termination ends the loop.
type Game struct {
	Presenter *Presenter
	Step      func() error
	Width     int
	Height    int
}

// Update runs one step.
func (g *Game) Update() error {
	return g.Step()
}

// Draw renders the last presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Presenter.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
