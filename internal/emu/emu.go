package emu

import (
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/scene"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/texpak"
)

// Machine hosts the 3D renderer the way the full system would: it owns the
// frame drive, installs geometry for each frame, and defers register writes
// to the V-blank window between frames.
type Machine struct {
	cfg   Config
	r     *gpu3d.Renderer
	scn   scene.Scene
	frame int
	fb    []byte // RGBA 256x192*4

	pending []regWrite
}

// Register write kinds queued for the next V-blank.
const (
	regDisp3DCnt = iota
	regClearColor
	regClearDepth
	regToonTable
)

type regWrite struct {
	kind  int
	index int
	mask  uint32
	value uint32
}

func New(cfg Config) *Machine {
	m := &Machine{
		cfg: cfg,
		r:   gpu3d.New(),
		fb:  make([]byte, gpu3d.ScreenWidth*gpu3d.ScreenHeight*4),
	}
	m.r.SetThreaded(cfg.Threaded3D)
	// Hardware reset leaves the clear depth at maximum
	m.r.WriteClearDepth(0xFFFF, 0x7FFF)
	return m
}

// Close stops the renderer's block workers.
func (m *Machine) Close() { m.r.Close() }

// Renderer exposes the renderer for direct slot installs.
func (m *Machine) Renderer() *gpu3d.Renderer { return m.r }

// SetScene installs a scene as the geometry source. The scene's one-time
// setup (textures, palettes, registers) runs immediately; this happens
// between frames, which is the safe window.
func (m *Machine) SetScene(s scene.Scene) {
	m.scn = s
	m.frame = 0
	if s != nil {
		s.Setup(m.r)
	}
}

// Scene returns the current scene, or nil.
func (m *Machine) Scene() scene.Scene { return m.scn }

// SetThreaded3D toggles the block-threaded render path between frames.
func (m *Machine) SetThreaded3D(on bool) {
	m.cfg.Threaded3D = on
	m.r.SetThreaded(on)
}

func (m *Machine) Threaded3D() bool { return m.cfg.Threaded3D }

// LoadTexturePack parses a texture pack and installs its payloads into the
// renderer's VRAM slots.
func (m *Machine) LoadTexturePack(data []byte) error {
	entries, err := texpak.Parse(data)
	if err != nil {
		return err
	}
	return texpak.Install(m.r, entries)
}

// WriteDisp3DCnt queues a DISP3DCNT write for the next V-blank.
func (m *Machine) WriteDisp3DCnt(mask, value uint16) {
	m.pending = append(m.pending, regWrite{kind: regDisp3DCnt, mask: uint32(mask), value: uint32(value)})
}

// WriteClearColor queues a CLEAR_COLOR write for the next V-blank.
func (m *Machine) WriteClearColor(mask, value uint32) {
	m.pending = append(m.pending, regWrite{kind: regClearColor, mask: mask, value: value})
}

// WriteClearDepth queues a CLEAR_DEPTH write for the next V-blank.
func (m *Machine) WriteClearDepth(mask, value uint16) {
	m.pending = append(m.pending, regWrite{kind: regClearDepth, mask: uint32(mask), value: uint32(value)})
}

// WriteToonTable queues a TOON_TABLE write for the next V-blank.
func (m *Machine) WriteToonTable(index int, mask, value uint16) {
	m.pending = append(m.pending, regWrite{kind: regToonTable, index: index, mask: uint32(mask), value: uint32(value)})
}

func (m *Machine) applyPending() {
	for _, w := range m.pending {
		switch w.kind {
		case regDisp3DCnt:
			m.r.WriteDisp3DCnt(uint16(w.mask), uint16(w.value))
		case regClearColor:
			m.r.WriteClearColor(w.mask, w.value)
		case regClearDepth:
			m.r.WriteClearDepth(uint16(w.mask), uint16(w.value))
		case regToonTable:
			m.r.WriteToonTable(w.index, uint16(w.mask), uint16(w.value))
		}
	}
	m.pending = m.pending[:0]
}

// StepFrame renders one full frame: queued register writes apply first
// (V-blank window), then the scene's polygon list for this frame installs
// and all 192 scanlines draw.
func (m *Machine) StepFrame() {
	m.applyPending()

	if m.scn != nil {
		m.r.InstallPolygons(m.scn.Polygons(m.frame))
	}
	for line := 0; line < gpu3d.ScreenHeight; line++ {
		m.r.DrawScanline(line)
	}
	m.frame++
	m.updateFramebuffer()
}

// Frame returns the number of frames stepped since the last scene change.
func (m *Machine) Frame() int { return m.frame }

// expand6 widens a 6-bit channel to 8 bits.
func expand6(c uint32) byte {
	return byte(c<<2 | c>>4)
}

func (m *Machine) updateFramebuffer() {
	fb := m.r.Framebuffer()
	for i, pix := range fb {
		m.fb[i*4+0] = expand6(pix & 0x3F)
		m.fb[i*4+1] = expand6((pix >> 6) & 0x3F)
		m.fb[i*4+2] = expand6((pix >> 12) & 0x3F)
		m.fb[i*4+3] = 0xFF
	}
}

// Framebuffer returns the last rendered frame as RGBA bytes, 256x192*4.
func (m *Machine) Framebuffer() []byte { return m.fb }
