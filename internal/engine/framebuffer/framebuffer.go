// Package framebuffer provides the CPU pixel buffer the rasterizer draws
// into, with file output in TGA, PNG or BMP.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/tinyrender/internal/engine/texture"
)

// Image is an RGBA pixel buffer addressed with (0, 0) at the top-left of the
// underlying image. Rasterized frames have y pointing up, so they are
// normally flipped before saving.
type Image struct {
	rgba *image.RGBA
}

// New creates a width x height image cleared to transparent black.
// Dimensions below 1 are raised to 1.
func New(width, height int) *Image {
	width = max(width, 1)
	height = max(height, 1)
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies img into a new Image.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Image{rgba: dst}
}

// Load reads an image file in any format texture.Load understands.
func Load(path string) (*Image, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Width returns the image width.
func (im *Image) Width() int { return im.rgba.Rect.Dx() }

// Height returns the image height.
func (im *Image) Height() int { return im.rgba.Rect.Dy() }

// RGBA exposes the backing image.
func (im *Image) RGBA() *image.RGBA { return im.rgba }

// Get returns the pixel at (x, y), or transparent black outside the image.
func (im *Image) Get(x, y int) color.RGBA {
	return im.rgba.RGBAAt(x, y)
}

// Set writes the pixel at (x, y), reporting false outside the image.
// Concurrent calls on distinct pixels are safe.
func (im *Image) Set(x, y int, c color.RGBA) bool {
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		return false
	}
	i := im.rgba.PixOffset(x, y)
	p := im.rgba.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	return true
}

// Clear fills the whole image with c.
func (im *Image) Clear(c color.RGBA) {
	draw.Draw(im.rgba, im.rgba.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FlipVertically mirrors the image about its horizontal centre line.
func (im *Image) FlipVertically() {
	h := im.Height()
	stride := im.rgba.Stride
	row := make([]byte, im.Width()*4)
	for y := 0; y < h/2; y++ {
		top := im.rgba.Pix[y*stride : y*stride+len(row)]
		bot := im.rgba.Pix[(h-1-y)*stride : (h-1-y)*stride+len(row)]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}

// Save writes the image to path, choosing the encoder from the extension:
// .tga (RLE), .png or .bmp. Missing parent directories are created.
func (im *Image) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(*os.File) error
	switch ext {
	case ".tga":
		encode = func(f *os.File) error { return texture.EncodeTGA(f, im.rgba, true) }
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, im.rgba) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, im.rgba) }
	default:
		return fmt.Errorf("save %s: unsupported image format %q", path, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", ext, err)
	}
	return f.Close()
}

// SaveTimestamped saves into dir as <prefix>_<timestamp><ext> and returns
// the path written.
func (im *Image) SaveTimestamped(dir, prefix, ext string) (string, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, time.Now().Format("2006-01-02_15-04-05"), ext)
	path := filepath.Join(dir, name)
	if err := im.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
