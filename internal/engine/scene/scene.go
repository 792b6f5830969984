// Package scene drives the two-pass render: a depth pass from the light
// that produces the shadow map, then the lit pass from the camera.
package scene

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/tinyrender/internal/config"
	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/internal/engine/framebuffer"
	"github.com/Faultbox/tinyrender/internal/engine/lighting"
	"github.com/Faultbox/tinyrender/internal/engine/raster"
	"github.com/Faultbox/tinyrender/internal/engine/shader"
	"github.com/Faultbox/tinyrender/internal/engine/shadow"
	"github.com/Faultbox/tinyrender/internal/logger"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Renderer renders meshes according to a configuration.
type Renderer struct {
	cfg *config.Config
	log *zap.Logger
}

// PassStats describes one render pass.
type PassStats struct {
	raster.Stats
	Elapsed time.Duration
}

// Stats collects the statistics of both passes.
type Stats struct {
	Shadow PassStats
	Lit    PassStats
}

// Result holds the images a render produced.
type Result struct {
	Frame *framebuffer.Image
	// Depth is the shadow pass rendered as grey levels, nil when the shadow
	// pass did not run.
	Depth   *framebuffer.Image
	ZBuffer *raster.DepthBuffer
	Stats   Stats
}

// New returns a renderer for cfg. The configuration must be valid.
func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg: cfg,
		log: logger.Named("scene"),
	}
}

// LightDirection returns the normalized direction towards the light.
func (r *Renderer) LightDirection() math.Vec3 {
	l := r.cfg.Light
	return lighting.Direction(l.Direction.Vec3(), l.Longitude, l.Latitude)
}

// CameraTransform returns the lit-pass transform for a frame of the
// configured size.
func (r *Renderer) CameraTransform() camera.Transform {
	c := r.cfg.Camera
	center, up := c.Center.Vec3(), c.Up.Vec3()

	tr := camera.NewTransform()
	if c.Orbit != nil {
		orbit := camera.Orbit{
			Center:   center,
			Distance: c.Orbit.Distance,
			Pitch:    c.Orbit.Pitch * math32.Pi / 180,
			Yaw:      c.Orbit.Yaw * math32.Pi / 180,
		}
		orbit.Apply(&tr, up)
	} else {
		eye := c.Eye.Vec3()
		tr.LookAt(eye, center, up)
		tr.SetProjection(camera.ProjectionCoeff(eye, center))
	}
	if !c.Perspective {
		tr.SetProjection(0)
	}
	r.setViewport(&tr, r.cfg.Render.Width, r.cfg.Render.Height)
	return tr
}

// setViewport insets the viewport by the configured margin on every side.
func (r *Renderer) setViewport(tr *camera.Transform, width, height int) {
	m := r.cfg.Render.Margin
	x := int(float32(width) * m)
	y := int(float32(height) * m)
	tr.SetViewport(x, y, width-2*x, height-2*y)
}

func (r *Renderer) shadowPassNeeded() bool {
	return r.cfg.Shadow.Enabled &&
		(r.cfg.Render.Shading == config.ShadingPhong || r.cfg.Output.Depth != "")
}

// Render runs the shadow pass, when needed, and the lit pass over meshes.
// Cancellation is checked between faces.
func (r *Renderer) Render(ctx context.Context, meshes []shader.Mesh) (*Result, error) {
	rc := r.cfg.Render
	light := r.LightDirection()
	litTr := r.CameraTransform()
	res := &Result{}

	r.log.Debug("render started",
		zap.Int("meshes", len(meshes)),
		zap.Int("width", rc.Width),
		zap.Int("height", rc.Height),
		zap.String("shading", rc.Shading))

	var occluder shader.Occluder
	if r.shadowPassNeeded() {
		sm, img, stats, err := r.shadowPass(ctx, meshes, light, litTr)
		if err != nil {
			return nil, fmt.Errorf("shadow pass: %w", err)
		}
		res.Depth = img
		res.Stats.Shadow = stats
		occluder = sm
	}

	frame := framebuffer.New(rc.Width, rc.Height)
	frame.Clear(rc.Background.Color())
	zbuf := raster.NewDepthBuffer(rc.Width, rc.Height)
	rast := raster.New(litTr.Viewport, raster.WithWorkers(rc.Workers))

	start := time.Now()
	var lit raster.Stats
	for _, mesh := range meshes {
		sh := r.litShader(mesh, litTr, light, occluder)
		stats, err := rast.DrawMeshContext(ctx, mesh.NumFaces(), sh, frame, zbuf)
		accumulate(&lit, stats)
		if err != nil {
			return nil, fmt.Errorf("lit pass: %w", err)
		}
		if rc.Wireframe {
			if err := wireframe(ctx, rast, mesh, litTr, frame, rc.WireColor.Color()); err != nil {
				return nil, fmt.Errorf("wireframe: %w", err)
			}
		}
	}
	res.Stats.Lit = PassStats{Stats: lit, Elapsed: time.Since(start)}
	res.Frame = frame
	res.ZBuffer = zbuf

	r.log.Info("frame rendered",
		zap.Int("faces", lit.Faces),
		zap.Int("written", lit.Written),
		zap.Int("occluded", lit.Occluded),
		zap.Int("discarded", lit.Discarded),
		zap.Duration("lit", res.Stats.Lit.Elapsed),
		zap.Duration("shadow", res.Stats.Shadow.Elapsed))
	return res, nil
}

// shadowPass renders depth from the light and wraps the result as a
// shadow map addressed from the lit pass.
func (r *Renderer) shadowPass(ctx context.Context, meshes []shader.Mesh, light math.Vec3, litTr camera.Transform) (*shadow.Map, *framebuffer.Image, PassStats, error) {
	w, h := r.cfg.Render.Width, r.cfg.Render.Height
	if s := r.cfg.Shadow.Size; s > 0 {
		w, h = s, s
	}

	view := shadow.LightView(light, Bounds(meshes))
	tr := camera.NewTransform()
	view.Apply(&tr)
	r.setViewport(&tr, w, h)

	img := framebuffer.New(w, h)
	zbuf := raster.NewDepthBuffer(w, h)
	rast := raster.New(tr.Viewport, raster.WithWorkers(r.cfg.Render.Workers))

	start := time.Now()
	var stats raster.Stats
	for _, mesh := range meshes {
		s, err := rast.DrawMeshContext(ctx, mesh.NumFaces(), shader.NewDepth(mesh, tr), img, zbuf)
		accumulate(&stats, s)
		if err != nil {
			return nil, nil, PassStats{}, err
		}
	}
	ps := PassStats{Stats: stats, Elapsed: time.Since(start)}

	r.log.Debug("shadow pass done",
		zap.Int("size", w),
		zap.Float32("radius", view.Radius),
		zap.Int("written", stats.Written),
		zap.Duration("elapsed", ps.Elapsed))

	sm := shadow.NewMap(zbuf, tr, litTr)
	sm.Bias = r.cfg.Shadow.Bias
	sm.Ambient = r.cfg.Shadow.Ambient
	return sm, img, ps, nil
}

func (r *Renderer) litShader(mesh shader.Mesh, tr camera.Transform, light math.Vec3, occluder shader.Occluder) shader.Shader {
	rc := r.cfg.Render
	switch rc.Shading {
	case config.ShadingGouraud:
		g := shader.NewGouraud(mesh, tr, light, rc.Color.Color())
		g.Bands = rc.ToonBands
		return g
	case config.ShadingFlat:
		return shader.NewFlat(mesh, tr, rc.Color.Color())
	case config.ShadingDepth:
		return shader.NewDepth(mesh, tr)
	default:
		return shader.NewPhong(mesh, tr, light, occluder)
	}
}

func wireframe(ctx context.Context, rast *raster.Rasterizer, mesh shader.Mesh, tr camera.Transform, target raster.Target, c color.RGBA) error {
	for f := 0; f < mesh.NumFaces(); f++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var clip [3]math.Vec4
		for nth := range clip {
			clip[nth] = tr.Clip(mesh.Vertex(f, nth))
		}
		rast.Wire(clip, target, c)
	}
	return nil
}

func accumulate(dst *raster.Stats, s raster.Stats) {
	dst.Faces += s.Faces
	dst.Add(s.Result)
}

// Bounds returns the box around every face vertex of meshes.
func Bounds(meshes []shader.Mesh) r3.Box {
	var b r3.Box
	first := true
	for _, m := range meshes {
		for f := 0; f < m.NumFaces(); f++ {
			for nth := 0; nth < 3; nth++ {
				v := m.Vertex(f, nth)
				p := r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
				if first {
					b = r3.Box{Min: p, Max: p}
					first = false
					continue
				}
				b.Min = r3.Vec{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
				b.Max = r3.Vec{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
			}
		}
	}
	return b
}
