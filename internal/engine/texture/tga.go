package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaUncompressed = 2
	tgaRLE          = 10
)

// TGA errors.
var (
	ErrTGATooShort    = errors.New("tga: data too short")
	ErrTGAUnsupported = errors.New("tga: unsupported format")
	ErrTGATruncated   = errors.New("tga: pixel data truncated")
)

// tgaReader walks TGA pixel data in file order and stores each pixel at
// its image position.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	bpp         int
	topToBottom bool
	n           int
}

func (r *tgaReader) readPixel() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

func (r *tgaReader) put(c color.RGBA) {
	w := r.img.Rect.Dx()
	h := r.img.Rect.Dy()
	x, y := r.n%w, r.n/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA image with 24 or
// 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, ErrTGATooShort
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped image", ErrTGAUnsupported)
	}
	if imageType != tgaUncompressed && imageType != tgaRLE {
		return nil, fmt.Errorf("%w: image type %d", ErrTGAUnsupported, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrTGAUnsupported, bpp)
	}
	if 18+idLength > len(data) {
		return nil, ErrTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[18+idLength:],
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	total := width * height

	if imageType == tgaUncompressed {
		if len(r.data) < total*r.bpp {
			return nil, ErrTGATruncated
		}
		for r.n < total {
			c, _ := r.readPixel()
			r.put(c)
		}
		return r.img, nil
	}

	for r.n < total {
		if r.pos >= len(r.data) {
			return nil, ErrTGATruncated
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, ok := r.readPixel()
			if !ok {
				return nil, ErrTGATruncated
			}
			for i := 0; i < count && r.n < total; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && r.n < total; i++ {
			c, ok := r.readPixel()
			if !ok {
				return nil, ErrTGATruncated
			}
			r.put(c)
		}
	}
	return r.img, nil
}
