package raster

import (
	"context"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tinyrender/internal/engine/shader"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// ParallelThreshold is the default bounding-box area, in pixels, above which
// a triangle's rows are scanned concurrently.
const ParallelThreshold = 64 * 64

// Result counts what happened to the pixels a triangle covered.
type Result struct {
	Written   int // Passed the depth test and were shaded
	Discarded int // Rejected by the fragment stage
	Occluded  int // Failed the depth test
}

// Add accumulates other into r.
func (r *Result) Add(other Result) {
	r.Written += other.Written
	r.Discarded += other.Discarded
	r.Occluded += other.Occluded
}

// Covered returns the number of pixels inside the triangle.
func (r Result) Covered() int {
	return r.Written + r.Discarded + r.Occluded
}

// Stats summarises a DrawMesh call.
type Stats struct {
	Faces int
	Result
}

// Rasterizer scan-converts clip-space triangles. It holds the viewport of the
// current pass; one rasterizer serves any number of shaders and targets.
type Rasterizer struct {
	viewport  math.Mat4
	workers   int
	threshold int
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithWorkers bounds the goroutines used for one triangle. Values below 1
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Rasterizer) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		r.workers = n
	}
}

// WithParallelThreshold overrides ParallelThreshold.
func WithParallelThreshold(pixels int) Option {
	return func(r *Rasterizer) {
		r.threshold = pixels
	}
}

// New returns a rasterizer for the given viewport matrix.
func New(viewport math.Mat4, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		viewport:  viewport,
		workers:   runtime.GOMAXPROCS(0),
		threshold: ParallelThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Triangle rasterizes one triangle given its clip-space vertices.
//
// Coverage is sampled at pixel centres. Weights passed to the fragment stage
// are perspective-correct, and the depth written is the clip-space
// interpolation of viewport z over w. A pixel is shaded only when it is
// nearer than the value already in zbuf.
func (r *Rasterizer) Triangle(clip [3]math.Vec4, sh shader.Shader, target Target, zbuf *DepthBuffer) Result {
	var (
		scr    [3]math.Vec2
		zs, ws math.Vec3
	)
	for i := range clip {
		v := r.viewport.MulVec4(clip[i])
		scr[i] = v.Proj2().Div(v[3])
		zs.Set(i, v[2])
		ws.Set(i, v[3])
	}

	w := min(target.Width(), zbuf.Width())
	h := min(target.Height(), zbuf.Height())
	minX := max(0, int(math32.Floor(min(scr[0].X, scr[1].X, scr[2].X))))
	minY := max(0, int(math32.Floor(min(scr[0].Y, scr[1].Y, scr[2].Y))))
	maxX := min(w-1, int(math32.Floor(max(scr[0].X, scr[1].X, scr[2].X))))
	maxY := min(h-1, int(math32.Floor(max(scr[0].Y, scr[1].Y, scr[2].Y))))
	if minX > maxX || minY > maxY {
		return Result{}
	}

	row := func(y int) Result {
		var res Result
		for x := minX; x <= maxX; x++ {
			p := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			bc := Barycentric(scr[0], scr[1], scr[2], p)
			if outside(bc) {
				continue
			}
			bcClip := PerspectiveCorrect(bc, ws)
			depth := zs.Dot(bcClip) / ws.Dot(bcClip)
			if zbuf.At(x, y) >= depth {
				res.Occluded++
				continue
			}
			c, discard := sh.Fragment(bcClip)
			if discard {
				res.Discarded++
				continue
			}
			zbuf.Set(x, y, depth)
			target.Set(x, y, c)
			res.Written++
		}
		return res
	}

	rows := maxY - minY + 1
	if r.workers <= 1 || rows < 2 || (maxX-minX+1)*rows <= r.threshold {
		var res Result
		for y := minY; y <= maxY; y++ {
			res.Add(row(y))
		}
		return res
	}

	// Rows are disjoint, so workers never touch the same pixel.
	perRow := make([]Result, rows)
	var g errgroup.Group
	g.SetLimit(r.workers)
	for y := minY; y <= maxY; y++ {
		y := y
		g.Go(func() error {
			perRow[y-minY] = row(y)
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for _, rr := range perRow {
		res.Add(rr)
	}
	return res
}

// DrawMesh runs the vertex stage three times per face and rasterizes each
// resulting triangle, in face order.
func (r *Rasterizer) DrawMesh(faces int, sh shader.Shader, target Target, zbuf *DepthBuffer) Stats {
	stats, _ := r.DrawMeshContext(context.Background(), faces, sh, target, zbuf)
	return stats
}

// DrawMeshContext is DrawMesh with cancellation checked between faces.
// On cancellation it returns the statistics so far and ctx.Err().
func (r *Rasterizer) DrawMeshContext(ctx context.Context, faces int, sh shader.Shader, target Target, zbuf *DepthBuffer) (Stats, error) {
	var stats Stats
	for f := 0; f < faces; f++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		var clip [3]math.Vec4
		for nth := range clip {
			clip[nth] = sh.Vertex(f, nth)
		}
		stats.Add(r.Triangle(clip, sh, target, zbuf))
		stats.Faces++
	}
	return stats, nil
}
