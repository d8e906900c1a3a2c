package gpu3d

import "encoding/binary"

// texture returns texture data starting at the given byte address, or nil if
// the 128KB slot holding it is absent.
func (r *Renderer) texture(address uint32) []byte {
	i := address >> 17
	if i >= uint32(len(r.textures)) || r.textures[i] == nil {
		return nil
	}
	return r.textures[i][address&0x1FFFF:]
}

// palette returns palette data starting at the given byte address, or nil if
// the 16KB slot holding it is absent.
func (r *Renderer) palette(address uint32) []byte {
	i := address >> 14
	if i >= uint32(len(r.palettes)) || r.palettes[i] == nil {
		return nil
	}
	return r.palettes[i][address&0x3FFF:]
}

// readU16 reads a little-endian 16-bit value, yielding 0 past the slot end.
func readU16(data []byte, offset int) uint16 {
	if offset < 0 || offset+2 > len(data) {
		return 0
	}
	return binary.LittleEndian.Uint16(data[offset:])
}

// wrapCoord folds a texel coordinate into [0, size) according to the
// polygon's repeat/flip flags, clamping when repeat is off.
func wrapCoord(v, size int, repeat, flip bool) int {
	if repeat {
		count := 0
		for v < 0 {
			v += size
			count++
		}
		for v >= size {
			v -= size
			count++
		}
		// Mirror every second repeat
		if flip && count%2 != 0 {
			v = size - 1 - v
		}
		return v
	}
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

// readTexel samples the polygon's texture at integer texel coordinates s, t
// and returns a packed RGBA6 color. A zero value is fully transparent.
func (r *Renderer) readTexel(p *Polygon, s, t int) uint32 {
	s = wrapCoord(s, p.SizeS, p.RepeatS, p.FlipS)
	t = wrapCoord(t, p.SizeT, p.RepeatT, p.FlipT)

	switch p.TextureFmt {
	case TexA3I5:
		// 8 bits per texel: 5-bit palette index, 3-bit alpha
		data := r.texture(p.TextureAddr + uint32(t*p.SizeS+s))
		if len(data) == 0 {
			return 0
		}
		index := data[0]
		palette := r.palette(p.PaletteAddr)
		if palette == nil {
			return 0
		}
		color := readU16(palette, int(index&0x1F)*2) &^ (1 << 15)
		alpha := uint32(index>>5)*4 + uint32(index>>5)/2
		return rgba5ToRgba6((alpha << 15) | uint32(color))

	case TexPal4:
		// 2 bits per texel
		data := r.texture(p.TextureAddr + uint32(t*p.SizeS+s)/4)
		if len(data) == 0 {
			return 0
		}
		index := (data[0] >> ((s % 4) * 2)) & 0x03
		if p.Transparent0 && index == 0 {
			return 0
		}
		palette := r.palette(p.PaletteAddr)
		if palette == nil {
			return 0
		}
		return rgba5ToRgba6((0x1F << 15) | uint32(readU16(palette, int(index)*2)))

	case TexPal16:
		// 4 bits per texel
		data := r.texture(p.TextureAddr + uint32(t*p.SizeS+s)/2)
		if len(data) == 0 {
			return 0
		}
		index := (data[0] >> ((s % 2) * 4)) & 0x0F
		if p.Transparent0 && index == 0 {
			return 0
		}
		palette := r.palette(p.PaletteAddr)
		if palette == nil {
			return 0
		}
		return rgba5ToRgba6((0x1F << 15) | uint32(readU16(palette, int(index)*2)))

	case TexPal256:
		// 8 bits per texel
		data := r.texture(p.TextureAddr + uint32(t*p.SizeS+s))
		if len(data) == 0 {
			return 0
		}
		index := data[0]
		if p.Transparent0 && index == 0 {
			return 0
		}
		palette := r.palette(p.PaletteAddr)
		if palette == nil {
			return 0
		}
		return rgba5ToRgba6((0x1F << 15) | uint32(readU16(palette, int(index)*2)))

	case TexComp4x4:
		return r.readTexelComp4x4(p, s, t)

	case TexA5I3:
		// 8 bits per texel: 3-bit palette index, 5-bit alpha
		data := r.texture(p.TextureAddr + uint32(t*p.SizeS+s))
		if len(data) == 0 {
			return 0
		}
		index := data[0]
		palette := r.palette(p.PaletteAddr)
		if palette == nil {
			return 0
		}
		color := readU16(palette, int(index&0x07)*2) &^ (1 << 15)
		alpha := uint32(index >> 3)
		return rgba5ToRgba6((alpha << 15) | uint32(color))

	default:
		// 16-bit direct color; bit 15 is the alpha flag
		data := r.texture(p.TextureAddr)
		if data == nil {
			return 0
		}
		color := readU16(data, (t*p.SizeS+s)*2)
		var alpha uint32
		if color&(1<<15) != 0 {
			alpha = 0x1F
		}
		return rgba5ToRgba6((alpha << 15) | uint32(color))
	}
}

// readTexelComp4x4 decodes the 4x4 block compressed format. Each block packs
// 16 2-bit indices plus a 16-bit palette descriptor held in a parallel
// region of slot 1 (the second half of slot 1 for textures in slot 2).
func (r *Renderer) readTexelComp4x4(p *Polygon, s, t int) uint32 {
	tile := (t/4)*(p.SizeS/4) + s/4
	data := r.texture(p.TextureAddr + uint32(tile*4+t%4))
	if len(data) == 0 {
		return 0
	}
	index := (data[0] >> ((s % 4) * 2)) & 0x03

	// Locate the tile's palette descriptor
	address := 0x20000 + (p.TextureAddr&0x1FFFF)/2
	if p.TextureAddr>>17 == 2 {
		address += 0x10000
	}
	palData := r.texture(address)
	if palData == nil {
		return 0
	}
	palBase := readU16(palData, tile*2)
	palette := r.palette(p.PaletteAddr + uint32(palBase&0x3FFF)*4)
	if palette == nil {
		return 0
	}

	palColor := func(i int) uint32 {
		return rgba5ToRgba6((0x1F << 15) | uint32(readU16(palette, i*2)))
	}

	switch palBase >> 14 { // interpolation mode
	case 0:
		// Index 3 is transparent
		if index == 3 {
			return 0
		}
		return palColor(int(index))

	case 1:
		// Index 2 is the midpoint of colors 0 and 1, index 3 transparent
		switch index {
		case 2:
			return interpolateColor(palColor(0), palColor(1), 0, 1, 2)
		case 3:
			return 0
		default:
			return palColor(int(index))
		}

	case 2:
		return palColor(int(index))

	default:
		// Indices 2 and 3 mix colors 0 and 1 at 3/8 and 5/8
		switch index {
		case 2:
			return interpolateColor(palColor(0), palColor(1), 0, 3, 8)
		case 3:
			return interpolateColor(palColor(0), palColor(1), 0, 5, 8)
		default:
			return palColor(int(index))
		}
	}
}
