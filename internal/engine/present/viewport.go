package present

// Rect is a destination rectangle in window pixels, origin top-left.
type Rect struct {
	X, Y, W, H int
}

// Fit returns where a src-sized frame lands in a dst-sized window. With
// keepAspect false the frame is stretched over the whole window; otherwise
// it is scaled uniformly and centred with bars on two sides.
func Fit(srcW, srcH, dstW, dstH int, keepAspect bool) Rect {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return Rect{}
	}
	if !keepAspect {
		return Rect{W: dstW, H: dstH}
	}

	// Compare dstW/dstH against srcW/srcH without floats.
	if dstW*srcH > dstH*srcW {
		w := dstH * srcW / srcH
		return Rect{X: (dstW - w) / 2, W: w, H: dstH}
	}
	h := dstW * srcH / srcW
	return Rect{Y: (dstH - h) / 2, W: dstW, H: h}
}
