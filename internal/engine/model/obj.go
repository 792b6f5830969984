package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tinyrender/internal/engine/texture"
	"github.com/Faultbox/tinyrender/internal/logger"
	"github.com/Faultbox/tinyrender/pkg/encoding"
	"github.com/Faultbox/tinyrender/pkg/math"
)

var (
	// ErrMalformed reports an OBJ statement that cannot be parsed.
	ErrMalformed = errors.New("malformed OBJ")
	// ErrNoFaces reports an OBJ file without any face.
	ErrNoFaces = errors.New("OBJ has no faces")
)

// Texture map suffixes looked up next to the OBJ file.
const (
	DiffuseSuffix  = "_diffuse.tga"
	NormalSuffix   = "_nm.tga"
	SpecularSuffix = "_spec.tga"
)

// Load parses the OBJ file at path and attaches the texture maps found
// beside it. For head.obj these are head_diffuse.tga, head_nm.tga and
// head_spec.tga. A map that is missing or unreadable is logged and replaced
// by its fallback.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Parse(encoding.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if m.Name == "" {
		m.Name = filepath.Base(base)
	}

	m.diffuse = loadMap(base + DiffuseSuffix)
	m.normal = loadMap(base + NormalSuffix)
	m.specular = loadMap(base + SpecularSuffix)

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", m.NumVertices()),
		zap.Int("faces", m.NumFaces()),
		zap.Bool("diffuse", m.diffuse != nil),
		zap.Bool("normal_map", m.normal != nil),
		zap.Bool("specular", m.specular != nil))
	return m, nil
}

func loadMap(path string) *texture.Map {
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("texture map unavailable, using fallback",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return texture.NewMap(img)
}

// Parse reads OBJ statements from r. Faces with more than three vertices are
// triangulated as fans. The first "o" statement names the model. Vertex normals absent from the file are derived from
// the adjacent faces.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	derive := false

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var f []float32
			if f, err = floats(fields[1:], 3); err == nil {
				m.verts = append(m.verts, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
			}
		case "vt":
			var f []float32
			if f, err = floats(fields[1:], 2); err == nil {
				m.uvs = append(m.uvs, math.Vec2{X: f[0], Y: f[1]})
			}
		case "vn":
			var f []float32
			if f, err = floats(fields[1:], 3); err == nil {
				m.norms = append(m.norms, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
			}
		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}
		case "f":
			var missing bool
			missing, err = m.addFace(fields[1:])
			derive = derive || missing
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read OBJ: %w", err)
	}
	if len(m.faces) == 0 {
		return nil, ErrNoFaces
	}
	if derive {
		m.deriveNormals()
	}
	return m, nil
}

// floats parses at least n leading numbers from fields.
func floats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrMalformed, n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// addFace parses one face statement. It reports whether any corner lacks a
// normal.
func (m *Model) addFace(fields []string) (bool, error) {
	if len(fields) < 3 {
		return false, fmt.Errorf("%w: face with %d vertices", ErrMalformed, len(fields))
	}

	corners := make([]corner, len(fields))
	missing := false
	for i, f := range fields {
		c, err := m.parseCorner(f)
		if err != nil {
			return false, err
		}
		missing = missing || c.n < 0
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		m.faces = append(m.faces, [3]corner{corners[0], corners[i], corners[i+1]})
	}
	return missing, nil
}

// parseCorner parses v, v/t, v//n or v/t/n.
func (m *Model) parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("%w: face vertex %q", ErrMalformed, s)
	}

	c := corner{v: -1, t: -1, n: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(m.verts)); err != nil {
		return corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.t, err = resolveIndex(parts[1], len(m.uvs)); err != nil {
			return corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.n, err = resolveIndex(parts[2], len(m.norms)); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based one, checked against the count defined so far.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformed, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("%w: index 0", ErrMalformed)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("%w: index %s out of range (%d defined)", ErrMalformed, s, count)
	}
	return i, nil
}

// deriveNormals gives every corner without a normal the area-weighted
// average of the face normals around its position.
func (m *Model) deriveNormals() {
	acc := make([]math.Vec3, len(m.verts))
	for _, f := range m.faces {
		a, b, c := m.verts[f[0].v], m.verts[f[1].v], m.verts[f[2].v]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, k := range f {
			acc[k.v] = acc[k.v].Add(n)
		}
	}

	base := len(m.norms)
	for _, n := range acc {
		m.norms = append(m.norms, n.Normalize())
	}
	for i := range m.faces {
		for k := range m.faces[i] {
			if m.faces[i][k].n < 0 {
				m.faces[i][k].n = base + m.faces[i][k].v
			}
		}
	}
}
