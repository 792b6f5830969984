// Package texture decodes and encodes the image formats used for texture
// maps and rendered frames, and samples textures by uv coordinate.
package texture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGray      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize       = 18
	tgaTopToBottom byte = 0x20
)

var (
	// ErrUnsupportedTGA reports a TGA variant this package cannot decode.
	ErrUnsupportedTGA = errors.New("unsupported TGA")
	// ErrTruncatedTGA reports TGA data that ends before the pixels do.
	ErrTruncatedTGA = errors.New("TGA data truncated")
)

var tgaFooter = []byte("\x00\x00\x00\x00\x00\x00\x00\x00TRUEVISION-XFILE.\x00")

// DecodeTGA decodes a TGA image.
// Supports uncompressed and RLE compressed images, true-color (24/32 bpp) or
// grayscale (8 bpp). Color-mapped images are rejected.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header", ErrTruncatedTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:14]))
	height := int(binary.LittleEndian.Uint16(data[14:16]))
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped image", ErrUnsupportedTGA)
	}
	gray := imageType == TGATypeGray || imageType == TGATypeRLEGray
	switch imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("%w: true-color bit depth %d", ErrUnsupportedTGA, bpp)
		}
	case TGATypeGray, TGATypeRLEGray:
		if bpp != 8 {
			return nil, fmt.Errorf("%w: grayscale bit depth %d", ErrUnsupportedTGA, bpp)
		}
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, imageType)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrUnsupportedTGA, width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: id field", ErrTruncatedTGA)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		gray:        gray,
		topToBottom: descriptor&tgaTopToBottom != 0,
	}

	var err error
	if imageType == TGATypeRLE || imageType == TGATypeRLEGray {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	gray        bool
	topToBottom bool
}

// pixel reads one pixel at the cursor. TGA stores BGR(A).
func (d *tgaDecoder) pixel() (color.RGBA, error) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, fmt.Errorf("%w: pixel data", ErrTruncatedTGA)
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	if d.gray {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores the i-th pixel in file order.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := i%w, i/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	n := d.img.Rect.Dx() * d.img.Rect.Dy()
	for i := 0; i < n; i++ {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(i, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	n := d.img.Rect.Dx() * d.img.Rect.Dy()
	for i := 0; i < n; {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: %d of %d pixels", ErrTruncatedTGA, i, n)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1
		if i+count > n {
			return fmt.Errorf("%w: packet overruns image", ErrUnsupportedTGA)
		}

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for k := 0; k < count; k++ {
				d.put(i, c)
				i++
			}
			continue
		}

		// Raw packet
		for k := 0; k < count; k++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.put(i, c)
			i++
		}
	}
	return nil
}

// EncodeTGA writes img as a 32 bpp top-to-bottom TGA, RLE compressed when
// rle is set.
func EncodeTGA(w io.Writer, img image.Image, rle bool) error {
	rgba := ToRGBA(img)
	width, height := rgba.Rect.Dx(), rgba.Rect.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("encode TGA: %dx%d exceeds format limits", width, height)
	}

	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeUncompressed
	if rle {
		header[2] = TGATypeRLE
	}
	binary.LittleEndian.PutUint16(header[12:14], uint16(width))
	binary.LittleEndian.PutUint16(header[14:16], uint16(height))
	header[16] = 32
	header[17] = tgaTopToBottom | 8 // 8 alpha bits

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("encode TGA header: %w", err)
	}

	var err error
	if rle {
		err = writeRLE(bw, rgba)
	} else {
		err = writeRaw(bw, rgba)
	}
	if err != nil {
		return fmt.Errorf("encode TGA pixels: %w", err)
	}

	if _, err := bw.Write(tgaFooter); err != nil {
		return fmt.Errorf("encode TGA footer: %w", err)
	}
	return bw.Flush()
}

func bgra(img *image.RGBA, i int) [4]byte {
	w := img.Rect.Dx()
	off := img.PixOffset(img.Rect.Min.X+i%w, img.Rect.Min.Y+i/w)
	p := img.Pix[off : off+4]
	return [4]byte{p[2], p[1], p[0], p[3]}
}

func writeRaw(w io.Writer, img *image.RGBA) error {
	n := img.Rect.Dx() * img.Rect.Dy()
	for i := 0; i < n; i++ {
		p := bgra(img, i)
		if _, err := w.Write(p[:]); err != nil {
			return err
		}
	}
	return nil
}

// writeRLE emits run-length packets for repeated pixels and raw packets for
// everything else, each covering at most 128 pixels.
func writeRLE(w io.Writer, img *image.RGBA) error {
	const maxChunk = 128
	n := img.Rect.Dx() * img.Rect.Dy()

	for i := 0; i < n; {
		start := i
		run := 1
		for i+run < n && run < maxChunk && bgra(img, i+run) == bgra(img, start) {
			run++
		}

		if run > 1 {
			p := bgra(img, start)
			if _, err := w.Write([]byte{byte(0x80 | (run - 1))}); err != nil {
				return err
			}
			if _, err := w.Write(p[:]); err != nil {
				return err
			}
			i += run
			continue
		}

		// Collect pixels until the next run of two begins.
		raw := 1
		for i+raw < n && raw < maxChunk {
			if i+raw+1 < n && bgra(img, i+raw) == bgra(img, i+raw+1) {
				break
			}
			raw++
		}
		if _, err := w.Write([]byte{byte(raw - 1)}); err != nil {
			return err
		}
		for k := 0; k < raw; k++ {
			p := bgra(img, i+k)
			if _, err := w.Write(p[:]); err != nil {
				return err
			}
		}
		i += raw
	}
	return nil
}

// ToRGBA converts any image.Image to *image.RGBA, returning RGBA input as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba
}
