package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel. Bottom-up images are flipped so row 0 is the top row.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = r.readRaw()
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaReader walks BGR(A) pixel data into an RGBA image.
type tgaReader struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	bpp         int
	topToBottom bool
	pixel       int
}

func (r *tgaReader) readRaw() error {
	if len(r.src) < r.width*r.height*r.bpp {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for r.pixel < r.width*r.height {
		c, _ := r.next()
		r.put(c)
	}
	return nil
}

// readRLE stops quietly at the end of the data, leaving remaining pixels
// transparent, since some exporters write short final packets.
func (r *tgaReader) readRLE() error {
	total := r.width * r.height
	for r.pixel < total && r.pos < len(r.src) {
		packet := r.src[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				break
			}
			for i := 0; i < count && r.pixel < total; i++ {
				r.put(c)
			}
			continue
		}

		for i := 0; i < count && r.pixel < total; i++ {
			c, ok := r.next()
			if !ok {
				return nil
			}
			r.put(c)
		}
	}
	return nil
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, false
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores c at the next pixel position.
func (r *tgaReader) put(c color.RGBA) {
	x := r.pixel % r.width
	y := r.pixel / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}
