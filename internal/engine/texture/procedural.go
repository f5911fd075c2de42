package texture

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/logger"
)

// Procedural texture size.
const proceduralSize = 256

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// White1x1 is the neutral texture for untextured materials.
func White1x1() *image.RGBA {
	return Solid(1, 1, color.RGBA{255, 255, 255, 255})
}

// Checkerboard returns a size x size board of cells x cells squares.
func Checkerboard(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Bricks returns a running-bond brick pattern with light mortar lines.
func Bricks(size int) *image.RGBA {
	brick := color.RGBA{150, 60, 40, 255}
	mortar := color.RGBA{200, 195, 185, 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	rowH := size / 8
	brickW := size / 4
	if rowH == 0 || brickW == 0 {
		return Solid(size, size, brick)
	}
	for y := 0; y < size; y++ {
		row := y / rowH
		shift := 0
		if row%2 == 1 {
			shift = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			if y%rowH == 0 || (x+shift)%brickW == 0 {
				c = mortar
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Ice returns a pale blue gradient used for the mirror surfaces.
func Ice(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := uint8((x + y) * 40 / (2 * size))
			img.SetRGBA(x, y, color.RGBA{180 + t, 215 + t/2, 240, 255})
		}
	}
	return img
}

// Fallback returns the procedural stand-in for a scene texture name.
func Fallback(name string) *image.RGBA {
	switch name {
	case "bricksTex":
		return Bricks(proceduralSize)
	case "checkboardTex":
		return Checkerboard(proceduralSize, 8, color.RGBA{255, 255, 255, 255}, color.RGBA{40, 40, 40, 255})
	case "iceTex":
		return Ice(proceduralSize)
	default:
		return White1x1()
	}
}

// FileNames maps scene texture names to their base file names.
var FileNames = map[string]string{
	"bricksTex":     "bricks",
	"checkboardTex": "checkboard",
	"iceTex":        "ice",
	"white1x1Tex":   "white1x1",
}

// LoadOrFallback loads texture name from dir, or returns its procedural
// stand-in with the reason it was needed. An empty dir always falls back.
func LoadOrFallback(dir, name string) (*image.RGBA, error) {
	if dir == "" {
		return Fallback(name), nil
	}
	file, ok := FileNames[name]
	if !ok {
		file = name
	}
	img, err := Load(dir, file)
	if err != nil {
		logger.Warn("using procedural texture", zap.String("texture", name), zap.Error(err))
		return Fallback(name), err
	}
	return img, nil
}
