package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/netisu/orrery"
)

// cameraStep is the eye movement per frame while an arrow key is held.
const cameraStep = 0.05

// runWindow shows the scene in a desktop window. Space cycles the first
// body's shader, arrow keys move the camera eye. It blocks until the
// window closes.
func runWindow(scene *orrery.Scene, r *orrery.Renderer) error {
	fb := r.Framebuffer
	g := &game{
		scene: scene,
		r:     r,
		img:   image.NewNRGBA(image.Rect(0, 0, fb.Width(), fb.Height())),
		fbImg: ebiten.NewImage(fb.Width(), fb.Height()),
	}
	ebiten.SetWindowTitle("orrery")
	ebiten.SetWindowSize(fb.Width(), fb.Height())
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	scene *orrery.Scene
	r     *orrery.Renderer
	img   *image.NRGBA
	fbImg *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && len(g.scene.Bodies) > 0 {
		b := g.scene.Bodies[0]
		b.Shader = b.Shader.Next()
		slog.Info("shader changed", "body", b.Name, "shader", b.Shader)
	}

	var d mgl64.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d[0] -= cameraStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d[0] += cameraStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d[1] += cameraStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d[1] -= cameraStep
	}
	g.scene.Camera.MoveEye(d)

	// clear and composite must finish before the frame is presented
	if err := g.scene.Draw(g.r); err != nil {
		slog.Error("frame drawn with errors", "frame", g.scene.FrameIndex(), "error", err)
	}
	orrery.PresentTo(g.r.Framebuffer, g.img)
	g.scene.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	label := ""
	if len(g.scene.Bodies) > 0 {
		label = g.scene.Bodies[0].Shader.String()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  %s", ebiten.ActualFPS(), label))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.r.Framebuffer.Width(), g.r.Framebuffer.Height()
}
