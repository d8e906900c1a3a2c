package texpak

import (
	"encoding/binary"
	"fmt"
	"image"
)

// EncodeDirect converts an NRGBA image to 16-bit direct color texels. Pixels
// with alpha below 128 drop the opacity bit.
func EncodeDirect(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r5 := uint16(img.Pix[i]) >> 3
			g5 := uint16(img.Pix[i+1]) >> 3
			b5 := uint16(img.Pix[i+2]) >> 3
			texel := b5<<10 | g5<<5 | r5
			if img.Pix[i+3] >= 128 {
				texel |= 1 << 15
			}
			binary.LittleEndian.PutUint16(out[(y*w+x)*2:], texel)
		}
	}
	return out
}

// EncodePal256 converts an NRGBA image to 8-bit palette indices plus an
// RGB5 palette. The palette is built from the image's distinct 15-bit
// colors; index 0 is reserved for transparency when transparent0 is set.
func EncodePal256(img *image.NRGBA, transparent0 bool) (tex, pal []byte, err error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	indices := map[uint16]int{}
	var colors []uint16
	if transparent0 {
		colors = append(colors, 0)
	}

	tex = make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			if transparent0 && img.Pix[i+3] < 128 {
				continue // stays index 0
			}
			c := uint16(img.Pix[i])>>3 | uint16(img.Pix[i+1])>>3<<5 | uint16(img.Pix[i+2])>>3<<10
			idx, ok := indices[c]
			if !ok {
				idx = len(colors)
				if idx > 255 {
					return nil, nil, fmt.Errorf("texpak: more than 256 distinct colors")
				}
				indices[c] = idx
				colors = append(colors, c)
			}
			tex[y*w+x] = byte(idx)
		}
	}

	pal = make([]byte, len(colors)*2)
	for i, c := range colors {
		binary.LittleEndian.PutUint16(pal[i*2:], c)
	}
	return tex, pal, nil
}
