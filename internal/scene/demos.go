package scene

import (
	"encoding/binary"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
)

// Flat is a single gouraud-shaded triangle drifting sideways.
type Flat struct{}

func (*Flat) Name() string { return "flat" }

func (*Flat) Setup(r *gpu3d.Renderer) {
	r.WriteClearColor(0xFFFFFFFF, 0x001F0000|0x0C63) // dim gray backdrop
	r.WriteClearDepth(0xFFFF, 0x7FFF)
}

func (*Flat) Polygons(frame int) []gpu3d.Polygon {
	dx := bounce(frame, 80) - 40
	tri := gpu3d.Polygon{Size: 3}
	tri.Vertices[0] = gpu3d.Vertex{X: 64 + dx, Y: 48, Z: 0x1000, W: 0x1000, Color: rgba6(0x3F, 0, 0, 0x3F)}
	tri.Vertices[1] = gpu3d.Vertex{X: 192 + dx, Y: 48, Z: 0x1000, W: 0x1000, Color: rgba6(0, 0x3F, 0, 0x3F)}
	tri.Vertices[2] = gpu3d.Vertex{X: 128 + dx, Y: 144, Z: 0x1000, W: 0x1000, Color: rgba6(0, 0, 0x3F, 0x3F)}
	return []gpu3d.Polygon{tri}
}

// Texture layout used by the textured demo, all within slot 0.
const (
	checkerAddr = 0x00000 // 8x8 direct color
	rampAddr    = 0x08000 // 16x16 256-color palette
	glowAddr    = 0x10000 // 8x8 A5I3
	compAddr    = 0x18000 // 8x8 compressed
)

// Textured shows four texel paths: direct, 256-color paletted, translucent
// A5I3, block compressed, plus wrap/flip repeats and perspective correction.
// A3I5 and the 4- and 16-color formats are not used.
type Textured struct{}

func (*Textured) Name() string { return "textured" }

func (*Textured) Setup(r *gpu3d.Renderer) {
	tex := make([]byte, 0x20000)
	pal := make([]byte, 0x4000)

	// Checkerboard, direct color
	for t := 0; t < 8; t++ {
		for s := 0; s < 8; s++ {
			c := uint16(0x8000 | 0x001F) // red
			if (s+t)%2 == 0 {
				c = 0x8000 | 0x7FFF // white
			}
			binary.LittleEndian.PutUint16(tex[checkerAddr+(t*8+s)*2:], c)
		}
	}

	// Color ramp, 256-color palette at palette address 0
	for t := 0; t < 16; t++ {
		for s := 0; s < 16; s++ {
			tex[rampAddr+t*16+s] = byte(t*16 + s)
		}
	}
	for i := 0; i < 256; i++ {
		c := uint16(i%32)<<5 | uint16(i/8)
		binary.LittleEndian.PutUint16(pal[i*2:], c)
	}

	// Soft glow, A5I3: alpha falls off from the center, palette at 0x800
	for t := 0; t < 8; t++ {
		for s := 0; s < 8; s++ {
			d := (s-4)*(s-4) + (t-4)*(t-4)
			a := 31 - d
			if a < 0 {
				a = 0
			}
			tex[glowAddr+t*8+s] = byte(a<<3 | 1)
		}
	}
	binary.LittleEndian.PutUint16(pal[0x800+2:], 0x03FF) // index 1: yellow

	// Compressed 8x8: four blocks of solid indices, mode-2 descriptors.
	// Descriptors for slot-0 textures live in slot 1 at compAddr/2.
	desc := make([]byte, 0x20000)
	for i := 0; i < 16; i++ {
		tex[compAddr+i] = 0x55 // index 1 everywhere
	}
	for tile := 0; tile < 4; tile++ {
		binary.LittleEndian.PutUint16(desc[compAddr/2+tile*2:], 2<<14|uint16(0x900/4+tile))
	}
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint16(pal[0x900+i*2:], uint16(0x7C00|i<<7)) // blue shades
	}

	r.InstallTextureSlot(0, tex)
	r.InstallTextureSlot(1, desc)
	r.InstallPaletteSlot(0, pal)

	r.WriteClearColor(0xFFFFFFFF, 0x001F0000)
	r.WriteClearDepth(0xFFFF, 0x7FFF)
}

func (*Textured) Polygons(frame int) []gpu3d.Polygon {
	white := rgba6(0x3F, 0x3F, 0x3F, 0x3F)
	scroll := frame % 256 * 16

	// Repeating, flipped checkerboard scrolling sideways
	checker := texQuad(16, 16, 112, 80, 0x1000, white, gpu3d.TexDirect, 8, 8, 24*16, 16*16)
	checker.TextureAddr = checkerAddr
	checker.RepeatS, checker.FlipS = true, true
	checker.RepeatT = true
	for i := range checker.Vertices[:4] {
		checker.Vertices[i].S += scroll
	}

	// Palette ramp
	ramp := texQuad(144, 16, 240, 80, 0x1000, white, gpu3d.TexPal256, 16, 16, 16*16, 16*16)
	ramp.TextureAddr = rampAddr

	// Perspective-correct checkerboard: the right edge sits "further away"
	persp := texQuad(16, 104, 112, 176, 0x1000, white, gpu3d.TexDirect, 8, 8, 16*16, 16*16)
	persp.TextureAddr = checkerAddr
	persp.RepeatS, persp.RepeatT = true, true
	persp.Vertices[1].W = 0x3000
	persp.Vertices[2].W = 0x3000

	// Compressed blocks behind a translucent glow
	comp := texQuad(144, 104, 208, 168, 0x1000, white, gpu3d.TexComp4x4, 8, 8, 8*16, 8*16)
	comp.TextureAddr = compAddr
	comp.PaletteAddr = 0

	dx := bounce(frame, 48)
	glow := texQuad(160+dx/2, 112, 224+dx/2, 176, 0x800, white, gpu3d.TexA5I3, 8, 8, 8*16, 8*16)
	glow.TextureAddr = glowAddr
	glow.PaletteAddr = 0x800

	return []gpu3d.Polygon{checker, ramp, persp, comp, glow}
}

// Toon shades a color sweep through the toon table next to a plain
// modulation reference.
type Toon struct {
	Highlight bool
}

func (s *Toon) Name() string {
	if s.Highlight {
		return "highlight"
	}
	return "toon"
}

func (s *Toon) Setup(r *gpu3d.Renderer) {
	// A plain white texture so the toon path has a texel to modulate
	tex := make([]byte, 0x20000)
	for i := 0; i < 64; i++ {
		binary.LittleEndian.PutUint16(tex[i*2:], 0xFFFF)
	}
	r.InstallTextureSlot(0, tex)

	// Four hard bands from dark red to bright orange
	for i := 0; i < 32; i++ {
		band := uint16(i / 8)
		r.WriteToonTable(i, 0x7FFF, (band*8+7)|(band*8)<<5)
	}
	var highlight uint16
	if s.Highlight {
		highlight = 1 << 1
	}
	r.WriteDisp3DCnt(0xFFFF, highlight)
	r.WriteClearColor(0xFFFFFFFF, 0x001F0000)
	r.WriteClearDepth(0xFFFF, 0x7FFF)
}

func (s *Toon) Polygons(frame int) []gpu3d.Polygon {
	// Vertex red sweeps 0..0x3F left to right, indexing the toon bands
	sweep := texQuad(32, 32, 224, 96, 0x1000, 0, gpu3d.TexDirect, 8, 8, 8*16, 8*16)
	for i, c := range []uint32{0, 0x3F, 0x3F, 0} {
		sweep.Vertices[i].Color = rgba6(c, c, c, 0x3F)
	}
	sweep.Mode = gpu3d.ModeToon

	reference := quad(32, 112, 224, 176, 0x1000, 0)
	for i, c := range []uint32{0, 0x3F, 0x3F, 0} {
		reference.Vertices[i].Color = rgba6(c, c, c, 0x3F)
	}
	return []gpu3d.Polygon{sweep, reference}
}

// Shadow drops a moving shadow volume onto a floor and a pillar.
type Shadow struct{}

func (*Shadow) Name() string { return "shadow" }

func (*Shadow) Setup(r *gpu3d.Renderer) {
	r.WriteClearColor(0xFFFFFFFF, 0x001F0000|0x0C63)
	r.WriteClearDepth(0xFFFF, 0x7FFF)
}

func (*Shadow) Polygons(frame int) []gpu3d.Polygon {
	floor := quad(16, 96, 240, 176, 0x2000, rgba6(0x20, 0x30, 0x18, 0x3F))
	floor.ID = 1
	pillar := quad(120, 32, 152, 176, 0x1000, rgba6(0x30, 0x28, 0x10, 0x3F))
	pillar.ID = 2

	// The mask marks the left half of the volume in the stencil, so the
	// caster only darkens the right half; the pillar sits in front of both
	x := 32 + bounce(frame, 144)
	shade := rgba6(0, 0, 0, 0x18)
	mask := quad(x, 64, x+24, 160, 0x1800, shade)
	mask.Mode = gpu3d.ModeShadow
	mask.ID = 0
	caster := quad(x, 64, x+48, 160, 0x1800, shade)
	caster.Mode = gpu3d.ModeShadow
	caster.ID = 5

	return []gpu3d.Polygon{floor, pillar, mask, caster}
}

// Blend crosses translucent panes over an opaque backdrop; one pane updates
// the depth buffer on translucent writes, the other does not.
type Blend struct{}

func (*Blend) Name() string { return "blend" }

func (*Blend) Setup(r *gpu3d.Renderer) {
	r.WriteClearColor(0xFFFFFFFF, 0x001F0000|0x0421)
	r.WriteClearDepth(0xFFFF, 0x7FFF)
}

func (*Blend) Polygons(frame int) []gpu3d.Polygon {
	back := quad(48, 48, 208, 144, 0x3000, rgba6(0x3F, 0x3F, 0x3F, 0x3F))
	back.ID = 1

	x := 16 + bounce(frame, 128)
	pane := quad(x, 32, x+64, 160, 0x2000, rgba6(0x3F, 0, 0, 0x20))
	pane.ID = 2

	other := quad(240-x-64, 32, 240-x, 160, 0x1000, rgba6(0, 0, 0x3F, 0x20))
	other.ID = 3
	other.TransNewDepth = true

	return []gpu3d.Polygon{back, pane, other}
}
