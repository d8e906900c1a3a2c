// Package gpu3d implements the DS 3D engine's software rasterizer. The
// geometry engine hands it a list of screen-space polygons per frame; the
// renderer produces a 256x192 framebuffer of 18-bit color + 6-bit alpha
// pixels, driven one scanline at a time by the host.
package gpu3d

import "sync"

// Renderer holds the frame state for the 3D layer. The polygon list and the
// texture/palette slots are installed before a frame and stay immutable
// while it renders; register writes happen in the V-blank window.
type Renderer struct {
	framebuffer [ScreenHeight * ScreenWidth]uint32

	// Per-block row state, shared by the 48 scanlines of a block
	depthBuffer   [numBlocks][ScreenWidth]int
	attribBuffer  [numBlocks][ScreenWidth]uint8
	stencilBuffer [numBlocks][ScreenWidth]uint8

	textures [4][]byte // 128KB texture slots
	palettes [8][]byte // 16KB palette slots

	polygons []Polygon

	disp3DCnt  uint16
	clearColor uint32
	clearDepth int
	toonTable  [32]uint32

	threaded bool

	// One long-lived worker per 48-line block; start/done pairs carry the
	// per-frame kick and join
	start [numBlocks]chan struct{}
	done  [numBlocks]chan struct{}
	busy  [numBlocks]bool
	wg    sync.WaitGroup

	// Per-block scratch for the translucent pass, so threaded blocks don't
	// share an append target
	translucent [numBlocks][]*Polygon
}

// New creates a renderer and starts its block workers. Callers must Close it
// to stop them.
func New() *Renderer {
	r := &Renderer{}
	for i := 0; i < numBlocks; i++ {
		r.start[i] = make(chan struct{})
		r.done[i] = make(chan struct{})
		r.wg.Add(1)
		go r.blockWorker(i)
	}
	return r
}

// Close joins any outstanding block work and stops the workers.
func (r *Renderer) Close() {
	for i := 0; i < numBlocks; i++ {
		r.joinBlock(i)
		close(r.start[i])
	}
	r.wg.Wait()
}

func (r *Renderer) blockWorker(i int) {
	defer r.wg.Done()
	for range r.start[i] {
		for line := i * blockLines; line < (i+1)*blockLines; line++ {
			r.drawLine(line)
		}
		r.done[i] <- struct{}{}
	}
}

func (r *Renderer) joinBlock(i int) {
	if r.busy[i] {
		<-r.done[i]
		r.busy[i] = false
	}
}

// SetThreaded switches between one-scanline-at-a-time rendering and the
// four-block threaded mode. Switching on starts threaded rendering at the
// next line 0; switching off applies from the next DrawScanline call.
func (r *Renderer) SetThreaded(on bool) {
	for i := 0; i < numBlocks; i++ {
		r.joinBlock(i)
	}
	r.threaded = on
}

// InstallPolygons hands the renderer the frame's polygon list. The list is
// read-only until the next install.
func (r *Renderer) InstallPolygons(polygons []Polygon) {
	r.polygons = polygons
}

// InstallTextureSlot maps 128KB of texture memory into slot i, or unmaps it
// when data is nil.
func (r *Renderer) InstallTextureSlot(i int, data []byte) {
	r.textures[i] = data
}

// InstallPaletteSlot maps 16KB of palette memory into slot i, or unmaps it
// when data is nil.
func (r *Renderer) InstallPaletteSlot(i int, data []byte) {
	r.palettes[i] = data
}

// DrawScanline renders the given scanline (0..191). In threaded mode the
// whole scene draws ahead across four block workers: line 0 kicks them off,
// and each block joins at its last line so the host can consume its rows.
// A real DS only has a 48-scanline cache, but the geometry buffers can only
// swap at V-blank, so drawing ahead produces identical output.
func (r *Renderer) DrawScanline(line int) {
	if r.threaded {
		if line == 0 {
			for i := 0; i < numBlocks; i++ {
				r.joinBlock(i)
				r.busy[i] = true
				r.start[i] <- struct{}{}
			}
		} else if line%blockLines == blockLines-1 {
			r.joinBlock(line / blockLines)
		}
		return
	}
	r.drawLine(line)
}

// drawLine renders one scanline into the framebuffer.
func (r *Renderer) drawLine(line int) {
	block := line / blockLines

	// Reset the scanline to the clear color
	row := r.framebuffer[line*ScreenWidth : (line+1)*ScreenWidth]
	for x := range row {
		row[x] = r.clearColor
	}

	// The depth, attribute, and stencil rows are shared across a block's 48
	// scanlines (shadow stencil state must survive between lines), so they
	// fully reset only at the block's first line
	if line%blockLines == 0 {
		for x := 0; x < ScreenWidth; x++ {
			r.depthBuffer[block][x] = r.clearDepth
			r.attribBuffer[block][x] = 0
			r.stencilBuffer[block][x] = 0
		}
	}

	// Every line depth-tests against fresh depth and attribute rows; columns
	// the line leaves at the clear values take back the block's earlier state
	prevDepth, prevAttrib := r.depthBuffer[block], r.attribBuffer[block]
	for x := 0; x < ScreenWidth; x++ {
		r.depthBuffer[block][x] = r.clearDepth
		r.attribBuffer[block][x] = 0
	}

	// Draw the solid polygons first, in submission order; translucent ones
	// keep their order but draw after
	trans := r.translucent[block][:0]
	for i := range r.polygons {
		p := &r.polygons[i]
		if (p.Vertices[0].Color>>18) < 0x3F || p.TextureFmt == TexA3I5 || p.TextureFmt == TexA5I3 {
			trans = append(trans, p)
		} else {
			r.drawPolygon(line, p)
		}
	}
	for _, p := range trans {
		r.drawPolygon(line, p)
	}
	r.translucent[block] = trans

	for x := 0; x < ScreenWidth; x++ {
		if r.depthBuffer[block][x] == r.clearDepth && r.attribBuffer[block][x] == 0 {
			r.depthBuffer[block][x] = prevDepth[x]
			r.attribBuffer[block][x] = prevAttrib[x]
		}
	}
}

// Framebuffer exposes the rendered pixels. Bits 0..23 hold RGBA6 color and
// bit 26 flags the pixel as 3D output.
func (r *Renderer) Framebuffer() *[ScreenHeight * ScreenWidth]uint32 {
	return &r.framebuffer
}

// Pixel returns the framebuffer word at x, y.
func (r *Renderer) Pixel(x, y int) uint32 {
	return r.framebuffer[y*ScreenWidth+x]
}
