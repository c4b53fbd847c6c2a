// Package app runs the interactive viewer: a raylib window streaming the
// progressive render into a texture, with keyboard and mouse camera control.
package app

import (
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/log"
	"github.com/dfaivre/go-hybrid-tracer/pkg/renderer"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

const (
	mouseSensitivity = 0.01

	// Scene logic runs on a fixed timestep decoupled from the frame rate.
	updatesPerSecond = 80
	logicStep        = 1.0 / updatesPerSecond
)

// Config holds viewer settings.
type Config struct {
	Width      int
	Height     int
	Title      string
	NumChunks  int
	NumWorkers int
	TargetFPS  int
}

// App owns the window loop and the pixel pipeline between renderer and GPU
// texture.
type App struct {
	scene    *scene.Scene
	camera   *renderer.Camera
	renderer *renderer.Renderer
	config   Config

	img []byte       // renderer output, RGBA
	pix []color.RGBA // staging slice for texture upload

	logger log.Logger
}

// New creates a viewer for the given scene. The camera starts at the scene's
// pose.
func New(s *scene.Scene, cfg Config) *App {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "hybrid tracer"
	}
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}

	a := &App{
		scene:    s,
		camera:   renderer.NewCameraWithPose(cfg.Width, cfg.Height, s.CameraPosition, s.CameraDirection),
		renderer: renderer.NewRenderer(cfg.NumChunks, cfg.NumWorkers),
		config:   cfg,
		logger:   log.New("app"),
	}
	a.resizeBuffers(cfg.Width, cfg.Height)
	return a
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(a.config.Width), int32(a.config.Height), a.config.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.config.TargetFPS))

	texture := a.createTexture()
	defer rl.UnloadTexture(texture)

	a.logger.Noticef("viewer started at %dx%d", a.config.Width, a.config.Height)

	lastTitle := time.Now()
	var tickBudget float64
	ups := 0
	for !rl.WindowShouldClose() {
		updated := a.handleInput()

		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			a.camera.HandleEvent(renderer.Resize{Width: w, Height: h})
			a.resizeBuffers(w, h)
			rl.UnloadTexture(texture)
			texture = a.createTexture()
			updated = true
		}

		tickBudget += float64(rl.GetFrameTime())
		for tickBudget >= logicStep {
			if a.scene.Step(logicStep) {
				updated = true
			}
			tickBudget -= logicStep
			ups++
		}

		stats, rendered := a.renderer.Render(a.scene, a.camera, a.img, updated)
		if rendered {
			for i := range a.pix {
				a.pix[i] = color.RGBA{
					R: a.img[i*4],
					G: a.img[i*4+1],
					B: a.img[i*4+2],
					A: a.img[i*4+3],
				}
			}
			rl.UpdateTexture(texture, a.pix)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.DrawTexture(texture, 0, 0, rl.White)
		rl.EndDrawing()

		if time.Since(lastTitle) >= time.Second {
			title := fmt.Sprintf("%s | %d fps | %d ups | frame %d",
				a.config.Title, rl.GetFPS(), ups, a.renderer.FrameIndex)
			if rendered {
				title += fmt.Sprintf(" | %s/pass", stats.Elapsed.Round(time.Millisecond))
			}
			rl.SetWindowTitle(title)
			lastTitle = time.Now()
			ups = 0
		}
	}

	a.logger.Notice("viewer closed")
	return nil
}

// handleInput translates raw key and mouse state into camera events and
// reports whether the camera changed.
func (a *App) handleInput() bool {
	var events []renderer.CameraEvent

	if rl.IsKeyDown(rl.KeyW) {
		events = append(events, renderer.MoveForward{})
	}
	if rl.IsKeyDown(rl.KeyS) {
		events = append(events, renderer.MoveBackward{})
	}
	if rl.IsKeyDown(rl.KeyA) {
		events = append(events, renderer.MoveLeft{})
	}
	if rl.IsKeyDown(rl.KeyD) {
		events = append(events, renderer.MoveRight{})
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		events = append(events, renderer.RotateXY{
			Delta: core.NewVec2(float64(delta.X)*mouseSensitivity, float64(delta.Y)*mouseSensitivity),
		})
	}

	updated := false
	for _, e := range events {
		if a.camera.HandleEvent(e) {
			updated = true
		}
	}
	return updated
}

func (a *App) resizeBuffers(width, height int) {
	a.img = make([]byte, width*height*4)
	a.pix = make([]color.RGBA, width*height)
}

func (a *App) createTexture() rl.Texture2D {
	img := rl.GenImageColor(a.camera.Width, a.camera.Height, rl.Black)
	defer rl.UnloadImage(img)
	return rl.LoadTextureFromImage(img)
}
