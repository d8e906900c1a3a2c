// texconv converts ordinary images (PNG, JPEG, TGA) into a texture pack the
// renderer can install: a direct-color or 256-color palette payload scaled
// to power-of-two texture dimensions.
package main

import (
	"bytes"
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/texpak"
)

type CLIFlags struct {
	In           string
	Out          string
	Format       string
	Width        int
	Height       int
	TexSlot      int
	PalSlot      int
	Transparent0 bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.In, "in", "", "input image (png, jpeg, tga)")
	flag.StringVar(&f.Out, "out", "textures.dstp", "output texture pack")
	flag.StringVar(&f.Format, "format", "direct", "texture format: direct or pal256")
	flag.IntVar(&f.Width, "width", 128, "texture width (power of two, max 1024)")
	flag.IntVar(&f.Height, "height", 128, "texture height (power of two, max 1024)")
	flag.IntVar(&f.TexSlot, "texslot", 0, "texture slot (0-3)")
	flag.IntVar(&f.PalSlot, "palslot", 0, "palette slot for pal256 (0-7)")
	flag.BoolVar(&f.Transparent0, "transparent0", false, "reserve palette index 0 for transparency")
	flag.Parse()
	return f
}

func powerOfTwo(v int) bool {
	return v >= 8 && v <= 1024 && v&(v-1) == 0
}

func loadImage(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if n, ok := src.(*image.NRGBA); ok {
		return n, nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst, nil
}

func main() {
	f := parseFlags()
	if f.In == "" {
		log.Fatal("no input image (-in)")
	}
	if !powerOfTwo(f.Width) || !powerOfTwo(f.Height) {
		log.Fatalf("texture dimensions %dx%d must be powers of two in 8..1024", f.Width, f.Height)
	}

	src, err := loadImage(f.In)
	if err != nil {
		log.Fatalf("load %s: %v", f.In, err)
	}

	// Rescale to the requested texture dimensions
	scaled := src
	if src.Bounds().Dx() != f.Width || src.Bounds().Dy() != f.Height {
		scaled = image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	var entries []texpak.Entry
	switch f.Format {
	case "direct":
		entries = append(entries, texpak.Entry{
			Kind: texpak.KindTexture,
			Slot: f.TexSlot,
			Data: texpak.EncodeDirect(scaled),
		})
	case "pal256":
		tex, pal, err := texpak.EncodePal256(scaled, f.Transparent0)
		if err != nil {
			log.Fatalf("quantize: %v", err)
		}
		entries = append(entries,
			texpak.Entry{Kind: texpak.KindTexture, Slot: f.TexSlot, Data: tex},
			texpak.Entry{Kind: texpak.KindPalette, Slot: f.PalSlot, Data: pal},
		)
	default:
		log.Fatalf("unknown format %q (want direct or pal256)", f.Format)
	}

	pack, err := texpak.Build(entries)
	if err != nil {
		log.Fatalf("build pack: %v", err)
	}
	if err := os.WriteFile(f.Out, pack, 0644); err != nil {
		log.Fatalf("write %s: %v", f.Out, err)
	}
	log.Printf("wrote %s: %s %dx%d, %d bytes", f.Out, f.Format, f.Width, f.Height, len(pack))
}
