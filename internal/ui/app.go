package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// App is the windowed front end: it steps the machine once per Ebiten
// update and shows the 3D framebuffer.
//
// Keys: P pause, N frame-step while paused, Tab next scene, T toggle the
// threaded renderer, F12 screenshot.
type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	scenes []scene.Scene
	scnIdx int
	paused bool
}

func NewApp(cfg Config, m *emu.Machine) *App {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(gpu3d.ScreenWidth*cfg.Scale, gpu3d.ScreenHeight*cfg.Scale)

	a := &App{cfg: cfg, m: m, scenes: scene.All()}
	// Line the scene index up with whatever the machine already shows
	if s := m.Scene(); s != nil {
		for i, known := range a.scenes {
			if known.Name() == s.Name() {
				a.scnIdx = i
				break
			}
		}
	}
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.scnIdx = (a.scnIdx + 1) % len(a.scenes)
		a.m.SetScene(a.scenes[a.scnIdx])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.m.SetThreaded3D(!a.m.Threaded3D())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}

	if !a.paused || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.StepFrame()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(gpu3d.ScreenWidth, gpu3d.ScreenHeight)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)

	mode := "single"
	if a.m.Threaded3D() {
		mode = "threaded"
	}
	status := fmt.Sprintf("%s  %s", a.scenes[a.scnIdx].Name(), mode)
	if a.paused {
		status += "  paused"
	}
	ebitenutil.DebugPrint(screen, status)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gpu3d.ScreenWidth, gpu3d.ScreenHeight
}

func (a *App) saveScreenshot() error {
	img := &image.RGBA{
		Pix:    make([]byte, len(a.m.Framebuffer())),
		Stride: 4 * gpu3d.ScreenWidth,
		Rect:   image.Rect(0, 0, gpu3d.ScreenWidth, gpu3d.ScreenHeight),
	}
	copy(img.Pix, a.m.Framebuffer())

	name := fmt.Sprintf("screenshot-%d.png", time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
