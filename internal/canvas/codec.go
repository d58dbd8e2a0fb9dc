package canvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an on-disk and on-wire image encoding.
type Format string

// Supported image formats. PNG is encoded with the standard library;
// BMP and TIFF come from golang.org/x/image.
const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat converts a config string into a [Format].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatBMP, FormatTIFF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown image format %q (expected png, bmp, or tiff)", s)
	}
}

// ContentType returns the MIME type served for this format.
func (f Format) ContentType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Decode reads an encoded image and converts it into a Canvas.
//
// Any format registered with the image package is accepted on input
// (png via the standard library, bmp and tiff via golang.org/x/image),
// regardless of the format the canvas will later be encoded with.
func Decode(r io.Reader) (*Canvas, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errEmptyImage
	}

	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c.pix[i+0] = uint8(r >> 8)
			c.pix[i+1] = uint8(g >> 8)
			c.pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return c, nil
}

// Encode writes the canvas to w in the given format.
func (c *Canvas) Encode(w io.Writer, f Format) error {
	img := c.toRGBA()

	var err error
	switch f {
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, nil)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode canvas as %s: %w", f, err)
	}
	return nil
}

// toRGBA converts the RGB buffer into an opaque image.RGBA for encoding.
func (c *Canvas) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	src := 0
	for dst := 0; dst < len(img.Pix); dst += 4 {
		img.Pix[dst+0] = c.pix[src+0]
		img.Pix[dst+1] = c.pix[src+1]
		img.Pix[dst+2] = c.pix[src+2]
		img.Pix[dst+3] = 0xff
		src += 3
	}
	return img
}

// Load reads the seed image at path and decodes it into a Canvas.
//
// The canvas dimensions are fixed by the seed image; there is no separate
// width/height configuration.
func Load(path string) (*Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed image: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("seed image %s: %w", path, err)
	}
	return c, nil
}

// Save encodes the canvas in the given format and overwrites path.
func (c *Canvas) Save(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := c.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
