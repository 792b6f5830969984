// Package raster scan-converts shaded triangles into a pixel target with a
// depth test, and draws lines for wireframe overlays.
package raster

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Target is the pixel sink a rasterizer writes to.
// Set reports false when (x, y) lies outside the target.
type Target interface {
	Width() int
	Height() int
	Set(x, y int, c color.RGBA) bool
}

// DepthBuffer stores one depth value per pixel. Larger values are nearer the
// eye; a cleared buffer holds -Inf everywhere.
type DepthBuffer struct {
	width, height int
	data          []float32
}

// NewDepthBuffer returns a cleared width x height buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
	d.Clear()
	return d
}

// Width returns the buffer width in pixels.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height in pixels.
func (d *DepthBuffer) Height() int { return d.height }

// InBounds reports whether (x, y) addresses a stored value.
func (d *DepthBuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

// At returns the depth at (x, y). It panics outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if !d.InBounds(x, y) {
		panic("raster: depth lookup out of range")
	}
	return d.data[y*d.width+x]
}

// Set stores v at (x, y), reporting false outside the buffer.
func (d *DepthBuffer) Set(x, y int, v float32) bool {
	if !d.InBounds(x, y) {
		return false
	}
	d.data[y*d.width+x] = v
	return true
}

// Clear resets every value to -Inf.
func (d *DepthBuffer) Clear() {
	inf := math32.Inf(-1)
	for i := range d.data {
		d.data[i] = inf
	}
}

// Range returns the smallest and largest finite depth written, and false when
// nothing has been written since the last Clear.
func (d *DepthBuffer) Range() (lo, hi float32, ok bool) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, v := range d.data {
		if math32.IsInf(v, 0) {
			continue
		}
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}
