package emu

// Config contains settings that affect rendering behavior.
type Config struct {
	Threaded3D bool // render the frame across 4 block workers
	// Later: per-frame geometry swap hooks, 2D compositor wiring, etc.
}
