// Package scene provides compiled-in demo scenes that stand in for the
// geometry engine: each installs its textures and registers once, then
// produces a screen-space polygon list per frame.
package scene

import "github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"

type Scene interface {
	Name() string
	// Setup installs textures, palettes, and registers. It runs between
	// frames, which is the safe window for register writes.
	Setup(r *gpu3d.Renderer)
	// Polygons returns the screen-space polygon list for a frame.
	Polygons(frame int) []gpu3d.Polygon
}

// All returns the demo scenes in display order.
func All() []Scene {
	return []Scene{
		&Flat{},
		&Textured{},
		&Toon{},
		&Toon{Highlight: true},
		&Shadow{},
		&Blend{},
	}
}

// ByName finds a scene by its name, or nil.
func ByName(name string) Scene {
	for _, s := range All() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// bounce produces a triangle wave over [0, span] with a period of 2*span
// frames, for simple back-and-forth motion.
func bounce(frame, span int) int {
	v := frame % (2 * span)
	if v > span {
		v = 2*span - v
	}
	return v
}

// rgba6 packs 6-bit channels into a pixel word.
func rgba6(r, g, b, a uint32) uint32 {
	return a<<18 | b<<12 | g<<6 | r
}

// quad builds an axis-aligned quad covering [x0,x1) x [y0,y1) at constant
// depth with one color for all vertices.
func quad(x0, y0, x1, y1, z int, color uint32) gpu3d.Polygon {
	p := gpu3d.Polygon{Size: 4}
	p.Vertices[0] = gpu3d.Vertex{X: x0, Y: y0, Z: z, W: 0x1000, Color: color}
	p.Vertices[1] = gpu3d.Vertex{X: x1, Y: y0, Z: z, W: 0x1000, Color: color}
	p.Vertices[2] = gpu3d.Vertex{X: x1, Y: y1, Z: z, W: 0x1000, Color: color}
	p.Vertices[3] = gpu3d.Vertex{X: x0, Y: y1, Z: z, W: 0x1000, Color: color}
	return p
}

// texQuad is quad with texture coordinates spanning [0,s1) x [0,t1) in
// 1/16 texel units.
func texQuad(x0, y0, x1, y1, z int, color uint32, fmt, sizeS, sizeT, s1, t1 int) gpu3d.Polygon {
	p := quad(x0, y0, x1, y1, z, color)
	p.TextureFmt = fmt
	p.SizeS, p.SizeT = sizeS, sizeT
	p.Vertices[1].S = s1
	p.Vertices[2].S, p.Vertices[2].T = s1, t1
	p.Vertices[3].T = t1
	return p
}
