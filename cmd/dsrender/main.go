package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/scene"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/ui"
	"github.com/HugoSmits86/nativewebp"
)

type CLIFlags struct {
	Scene    string
	Scale    int
	Title    string
	Threaded bool
	TexPack  string // optional texture pack overriding the scene's slots

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	WebPOut  string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.Scene, "scene", "flat", "demo scene name")
	flag.IntVar(&f.Scale, "scale", 3, "window scale")
	flag.StringVar(&f.Title, "title", "dsrender", "window title")
	flag.BoolVar(&f.Threaded, "threaded", false, "render across 4 block workers")
	flag.StringVar(&f.TexPack, "texpack", "", "texture pack to install after scene setup")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.WebPOut, "outwebp", "", "write last framebuffer to lossless WebP at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *emu.Machine, f CLIFlags) error {
	frames := f.Frames
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.StepFrame()
	}
	dur := time.Since(start)

	fb := m.Framebuffer() // RGBA 256x192*4
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		frames, dur.Truncate(time.Millisecond), fps, crc)

	if f.PNGOut != "" {
		if err := saveFramePNG(fb, f.PNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", f.PNGOut)
	}
	if f.WebPOut != "" {
		if err := saveFrameWebP(fb, f.WebPOut); err != nil {
			return fmt.Errorf("write WebP: %w", err)
		}
		log.Printf("wrote %s", f.WebPOut)
	}

	if f.Expect != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func frameImage(pix []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, gpu3d.ScreenWidth, gpu3d.ScreenHeight))
	copy(img.Pix, pix)
	return img
}

func saveFramePNG(pix []byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, frameImage(pix))
}

func saveFrameWebP(pix []byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, frameImage(pix), nil)
}

func main() {
	f := parseFlags()

	scn := scene.ByName(f.Scene)
	if scn == nil {
		names := make([]string, 0, len(scene.All()))
		for _, s := range scene.All() {
			names = append(names, s.Name())
		}
		log.Fatalf("unknown scene %q (have: %s)", f.Scene, strings.Join(names, ", "))
	}

	m := emu.New(emu.Config{Threaded3D: f.Threaded})
	defer m.Close()
	m.SetScene(scn)

	if f.TexPack != "" {
		data, err := os.ReadFile(f.TexPack)
		if err != nil {
			log.Fatalf("read %s: %v", f.TexPack, err)
		}
		if err := m.LoadTexturePack(data); err != nil {
			log.Fatalf("load texture pack: %v", err)
		}
		log.Printf("installed texture pack %s (%d bytes)", f.TexPack, len(data))
	}

	if f.Headless {
		if err := runHeadless(m, f); err != nil {
			log.Fatal(err)
		}
		return
	}

	app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale}, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
