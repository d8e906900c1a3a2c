package gpu3d

import "testing"

func TestWriteDisp3DCnt(t *testing.T) {
	r := newTestRenderer(t)
	r.WriteDisp3DCnt(0xFFFF, 0xFFFF)
	// Bits 12, 13, 15 are not writable
	if got := r.Disp3DCnt(); got != 0x4FFF {
		t.Fatalf("DISP3DCNT = %#x, want 0x4FFF", got)
	}
	r.WriteDisp3DCnt(0xFFFF, 0)
	if got := r.Disp3DCnt(); got != 0 {
		t.Fatalf("DISP3DCNT = %#x, want 0", got)
	}
	// Partial mask leaves other bits alone
	r.WriteDisp3DCnt(0x000F, 0xFFFF)
	if got := r.Disp3DCnt(); got != 0x000F {
		t.Fatalf("DISP3DCNT = %#x, want 0x000F", got)
	}
}

func TestDisp3DCntErrorAcknowledge(t *testing.T) {
	r := newTestRenderer(t)
	r.disp3DCnt = 1<<12 | 1<<13

	// Writing 0 to the error bits leaves them set
	r.WriteDisp3DCnt(0x0000, 0x0000)
	if got := r.Disp3DCnt(); got != 1<<12|1<<13 {
		t.Fatalf("DISP3DCNT = %#x, want error bits still set", got)
	}

	// Writing 1 to bit 12 acknowledges only bit 12
	r.WriteDisp3DCnt(0x0000, 1<<12)
	if got := r.Disp3DCnt(); got != 1<<13 {
		t.Fatalf("DISP3DCNT = %#x, want only bit 13", got)
	}
	r.WriteDisp3DCnt(0x0000, 1<<13)
	if got := r.Disp3DCnt(); got != 0 {
		t.Fatalf("DISP3DCNT = %#x, want 0", got)
	}
}

func TestWriteClearColor(t *testing.T) {
	r := newTestRenderer(t)
	// White RGB5 with alpha 31 in bits 16-20
	r.WriteClearColor(0xFFFFFFFF, 0x001F7FFF)
	want := uint32(0x3F<<18 | 0x3F<<12 | 0x3F<<6 | 0x3F)
	if r.clearColor != want {
		t.Fatalf("clear color = %#x, want %#x", r.clearColor, want)
	}

	// Mask strips the alpha
	r.WriteClearColor(0x0000FFFF, 0x001F7FFF)
	want = uint32(0x3F<<12 | 0x3F<<6 | 0x3F)
	if r.clearColor != want {
		t.Fatalf("masked clear color = %#x, want %#x", r.clearColor, want)
	}
}

func TestWriteClearDepth(t *testing.T) {
	r := newTestRenderer(t)
	r.WriteClearDepth(0xFFFF, 0)
	if r.clearDepth != 0 {
		t.Fatalf("clear depth = %#x, want 0", r.clearDepth)
	}
	r.WriteClearDepth(0xFFFF, 0x7FFF)
	if r.clearDepth != 0xFFFFFF {
		t.Fatalf("clear depth = %#x, want 0xFFFFFF", r.clearDepth)
	}
	r.WriteClearDepth(0xFFFF, 0x1234)
	if r.clearDepth != 0x1234*0x200 {
		t.Fatalf("clear depth = %#x, want %#x", r.clearDepth, 0x1234*0x200)
	}
}

func TestWriteToonTable(t *testing.T) {
	r := newTestRenderer(t)
	r.WriteToonTable(5, 0xFFFF, 0x7FFF)
	want := uint32(0x3F<<12 | 0x3F<<6 | 0x3F) // alpha bit is masked off
	if r.toonTable[5] != want {
		t.Fatalf("toon[5] = %#x, want %#x", r.toonTable[5], want)
	}
	r.WriteToonTable(5, 0x001F, 0x7FFF)
	if r.toonTable[5] != 0x3F {
		t.Fatalf("masked toon[5] = %#x, want red only", r.toonTable[5])
	}
}
