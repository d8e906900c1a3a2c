// Package texpak reads and writes texture packs: a small container that
// carries texture and palette payloads destined for the renderer's VRAM
// slots. cmd/texconv produces packs; the machine installs them.
package texpak

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
)

// Pack layout: 4-byte magic, version byte, entry count byte, then for each
// entry a 6-byte descriptor (kind, slot, 32-bit payload length), then the
// payloads back to back in entry order.
const (
	magic      = "DSTP"
	version    = 1
	headerSize = 6
	descSize   = 6
)

// Entry kinds.
const (
	KindTexture = 0
	KindPalette = 1
)

// Slot payload limits.
const (
	TextureSlotSize = 0x20000
	PaletteSlotSize = 0x4000
)

type Entry struct {
	Kind byte
	Slot int
	Data []byte
}

// Parse decodes a texture pack.
func Parse(data []byte) ([]Entry, error) {
	if len(data) < headerSize {
		return nil, errors.New("texpak: too small to contain header")
	}
	if string(data[:4]) != magic {
		return nil, fmt.Errorf("texpak: bad magic %q", data[:4])
	}
	if data[4] != version {
		return nil, fmt.Errorf("texpak: unsupported version %d", data[4])
	}
	count := int(data[5])

	if len(data) < headerSize+count*descSize {
		return nil, errors.New("texpak: truncated entry table")
	}

	entries := make([]Entry, 0, count)
	offset := headerSize + count*descSize
	for i := 0; i < count; i++ {
		desc := data[headerSize+i*descSize:]
		e := Entry{Kind: desc[0], Slot: int(desc[1])}
		length := int(binary.LittleEndian.Uint32(desc[2:6]))
		if offset+length > len(data) {
			return nil, fmt.Errorf("texpak: entry %d payload truncated", i)
		}
		e.Data = data[offset : offset+length]
		offset += length
		entries = append(entries, e)
	}
	return entries, nil
}

// Build encodes entries into a texture pack.
func Build(entries []Entry) ([]byte, error) {
	if len(entries) > 255 {
		return nil, errors.New("texpak: too many entries")
	}
	size := headerSize + len(entries)*descSize
	for _, e := range entries {
		size += len(e.Data)
	}

	out := make([]byte, 0, size)
	out = append(out, magic...)
	out = append(out, version, byte(len(entries)))
	for _, e := range entries {
		out = append(out, e.Kind, byte(e.Slot))
		out = binary.LittleEndian.AppendUint32(out, uint32(len(e.Data)))
	}
	for _, e := range entries {
		out = append(out, e.Data...)
	}
	return out, nil
}

// Install pads each entry to its slot size and maps it into the renderer.
func Install(r *gpu3d.Renderer, entries []Entry) error {
	for i, e := range entries {
		switch e.Kind {
		case KindTexture:
			if e.Slot < 0 || e.Slot >= 4 {
				return fmt.Errorf("texpak: entry %d: texture slot %d out of range", i, e.Slot)
			}
			if len(e.Data) > TextureSlotSize {
				return fmt.Errorf("texpak: entry %d: %d bytes exceed the texture slot", i, len(e.Data))
			}
			slot := make([]byte, TextureSlotSize)
			copy(slot, e.Data)
			r.InstallTextureSlot(e.Slot, slot)
		case KindPalette:
			if e.Slot < 0 || e.Slot >= 8 {
				return fmt.Errorf("texpak: entry %d: palette slot %d out of range", i, e.Slot)
			}
			if len(e.Data) > PaletteSlotSize {
				return fmt.Errorf("texpak: entry %d: %d bytes exceed the palette slot", i, len(e.Data))
			}
			slot := make([]byte, PaletteSlotSize)
			copy(slot, e.Data)
			r.InstallPaletteSlot(e.Slot, slot)
		default:
			return fmt.Errorf("texpak: entry %d: unknown kind %d", i, e.Kind)
		}
	}
	return nil
}
