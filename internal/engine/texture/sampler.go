package texture

import (
	"image"
	"image/color"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// Map samples an image by texture coordinate with nearest-texel lookup.
// uv (0, 0) is the bottom-left corner of the image and (1, 1) the top-right.
// Coordinates outside [0, 1] are clamped to the border.
type Map struct {
	img *image.RGBA
}

// NewMap wraps img for sampling.
func NewMap(img image.Image) *Map {
	return &Map{img: ToRGBA(img)}
}

// Width returns the image width in texels.
func (m *Map) Width() int { return m.img.Rect.Dx() }

// Height returns the image height in texels.
func (m *Map) Height() int { return m.img.Rect.Dy() }

// At returns the texel nearest to uv.
func (m *Map) At(uv math.Vec2) color.RGBA {
	w, h := m.Width(), m.Height()
	x := clampIndex(int(uv.X*float32(w)), w)
	y := clampIndex(int((1-uv.Y)*float32(h)), h)
	return m.img.RGBAAt(m.img.Rect.Min.X+x, m.img.Rect.Min.Y+y)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
