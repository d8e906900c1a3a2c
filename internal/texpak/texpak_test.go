package texpak

import (
	"bytes"
	"image"
	"testing"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
)

func TestBuildParseRoundTrip(t *testing.T) {
	entries := []Entry{
		{Kind: KindTexture, Slot: 0, Data: []byte{1, 2, 3, 4}},
		{Kind: KindPalette, Slot: 2, Data: []byte{9, 8}},
	}
	pack, err := Build(entries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := Parse(pack)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d entries, want 2", len(got))
	}
	for i := range entries {
		if got[i].Kind != entries[i].Kind || got[i].Slot != entries[i].Slot {
			t.Errorf("entry %d descriptor = %+v, want %+v", i, got[i], entries[i])
		}
		if !bytes.Equal(got[i].Data, entries[i].Data) {
			t.Errorf("entry %d payload mismatch", i)
		}
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte{1, 2}); err == nil {
		t.Error("short input accepted")
	}
	if _, err := Parse([]byte("NOPE\x01\x00")); err == nil {
		t.Error("bad magic accepted")
	}
	if _, err := Parse([]byte("DSTP\x02\x00")); err == nil {
		t.Error("future version accepted")
	}
	// Entry table promising more payload than present
	pack, _ := Build([]Entry{{Kind: KindTexture, Slot: 0, Data: []byte{1, 2, 3, 4}}})
	if _, err := Parse(pack[:len(pack)-2]); err == nil {
		t.Error("truncated payload accepted")
	}
}

func TestInstallPadsSlots(t *testing.T) {
	r := gpu3d.New()
	t.Cleanup(r.Close)
	err := Install(r, []Entry{
		{Kind: KindTexture, Slot: 1, Data: []byte{0xAA}},
		{Kind: KindPalette, Slot: 3, Data: []byte{0xBB, 0xCC}},
	})
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	// Out-of-range slots, unknown kinds, and oversized payloads are rejected
	if err := Install(r, []Entry{{Kind: KindTexture, Slot: 9, Data: nil}}); err == nil {
		t.Error("out-of-range texture slot accepted")
	}
	if err := Install(r, []Entry{{Kind: KindPalette, Slot: 8, Data: nil}}); err == nil {
		t.Error("out-of-range palette slot accepted")
	}
	if err := Install(r, []Entry{{Kind: 7, Slot: 0, Data: nil}}); err == nil {
		t.Error("unknown kind accepted")
	}
	big := make([]byte, TextureSlotSize+1)
	if err := Install(r, []Entry{{Kind: KindTexture, Slot: 0, Data: big}}); err == nil {
		t.Error("oversized payload accepted")
	}
}

func TestEncodeDirect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Pix = []byte{
		255, 0, 0, 255, // opaque red
		0, 0, 255, 0, // transparent blue
	}
	out := EncodeDirect(img)
	if len(out) != 4 {
		t.Fatalf("encoded %d bytes, want 4", len(out))
	}
	red := uint16(out[0]) | uint16(out[1])<<8
	if red != 0x8000|0x001F {
		t.Errorf("red texel = %#x, want %#x", red, 0x8000|0x001F)
	}
	blue := uint16(out[2]) | uint16(out[3])<<8
	if blue != 0x7C00 {
		t.Errorf("blue texel = %#x, want %#x (no alpha bit)", blue, 0x7C00)
	}
}

func TestEncodePal256(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Pix = []byte{
		255, 0, 0, 255, // red
		255, 0, 0, 255, // red again, same index
		0, 255, 0, 255, // green
		0, 0, 0, 0, // transparent
	}
	tex, pal, err := EncodePal256(img, true)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if tex[0] != tex[1] {
		t.Errorf("identical colors got indices %d and %d", tex[0], tex[1])
	}
	if tex[0] == 0 || tex[2] == 0 {
		t.Errorf("opaque colors must not use the reserved index 0")
	}
	if tex[3] != 0 {
		t.Errorf("transparent pixel index = %d, want 0", tex[3])
	}
	// Palette entry for red
	red := uint16(pal[int(tex[0])*2]) | uint16(pal[int(tex[0])*2+1])<<8
	if red != 0x001F {
		t.Errorf("red palette entry = %#x, want 0x001F", red)
	}
}

func TestEncodePal256TooManyColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < 32*32; i++ {
		// 1024 distinct 15-bit colors
		img.Pix[i*4+0] = byte(i % 32 << 3)
		img.Pix[i*4+1] = byte(i / 32 % 32 << 3)
		img.Pix[i*4+2] = byte(i / 1024 % 2 << 3)
		img.Pix[i*4+3] = 255
	}
	if _, _, err := EncodePal256(img, false); err == nil {
		t.Fatal("expected an error for more than 256 colors")
	}
}
