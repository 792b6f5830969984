package raster

import (
	"image/color"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// Line draws a Bresenham line between two pixel positions, endpoints
// included. It returns the number of pixels that landed inside target.
func Line(x0, y0, x1, y1 int, target Target, c color.RGBA) int {
	steep := abs(x1-x0) < abs(y1-y0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	ystep := 1
	if y1 < y0 {
		ystep = -1
	}

	n, e, y := 0, 0, y0
	for x := x0; x <= x1; x++ {
		var ok bool
		if steep {
			ok = target.Set(y, x, c)
		} else {
			ok = target.Set(x, y, c)
		}
		if ok {
			n++
		}
		e += 2 * dy
		if e > dx {
			y += ystep
			e -= 2 * dx
		}
	}
	return n
}

// Wire outlines a clip-space triangle after the viewport transform and
// perspective divide. No depth test is applied.
func (r *Rasterizer) Wire(clip [3]math.Vec4, target Target, c color.RGBA) int {
	var px [3][2]int
	for i := range clip {
		v := r.viewport.MulVec4(clip[i])
		p := v.Proj2().Div(v[3])
		px[i] = [2]int{int(p.X), int(p.Y)}
	}
	n := 0
	for i := range px {
		a, b := px[i], px[(i+1)%3]
		n += Line(a[0], a[1], b[0], b[1], target, c)
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
