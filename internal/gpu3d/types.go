package gpu3d

// Screen dimensions of the 3D layer.
const (
	ScreenWidth  = 256
	ScreenHeight = 192
)

// The depth/attribute/stencil buffers cover one 48-scanline block each,
// mirroring the hardware's 48-line render cache. 4 blocks cover the screen.
const (
	blockLines = 48
	numBlocks  = ScreenHeight / blockLines
)

// Texture formats (TEXIMAGE_PARAM bits 26-28).
const (
	TexNone    = 0
	TexA3I5    = 1 // 5-bit palette index + 3-bit alpha
	TexPal4    = 2 // 2 bpp paletted
	TexPal16   = 3 // 4 bpp paletted
	TexPal256  = 4 // 8 bpp paletted
	TexComp4x4 = 5 // 4x4 block compressed
	TexA5I3    = 6 // 3-bit palette index + 5-bit alpha
	TexDirect  = 7 // 16-bit direct color
)

// Polygon blend modes (POLYGON_ATTR bits 4-5).
const (
	ModeModulation = 0
	ModeDecal      = 1
	ModeToon       = 2 // toon or highlight shading, selected by DISP3DCNT bit 1
	ModeShadow     = 3
)

// Bit26 marks a framebuffer pixel as 3D output for the 2D compositor.
const Bit26 = 1 << 26

// Vertex is a screen-space vertex produced by the geometry engine.
// Color is packed RGBA6 (a<<18 | b<<12 | g<<6 | r); S and T are texture
// coordinates in 1/16 texel units.
type Vertex struct {
	X, Y  int
	Z     int
	W     int64
	Color uint32
	S, T  int
}

// Polygon is a convex screen-space primitive of 3 to 8 vertices.
type Polygon struct {
	Size     int
	Vertices [8]Vertex

	TextureFmt       int
	SizeS, SizeT     int
	RepeatS, RepeatT bool
	FlipS, FlipT     bool
	Transparent0     bool
	TextureAddr      uint32
	PaletteAddr      uint32

	Mode int
	ID   uint8

	WBuffer        bool
	DepthTestEqual bool
	TransNewDepth  bool
}
