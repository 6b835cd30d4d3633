// Package game runs the tile map viewer: window, input, zoom and drawing.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tilemap/internal/assets"
	"github.com/Faultbox/midgard-tilemap/internal/config"
	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
	"github.com/Faultbox/midgard-tilemap/internal/engine/debug"
	"github.com/Faultbox/midgard-tilemap/internal/engine/input"
	"github.com/Faultbox/midgard-tilemap/internal/engine/renderer"
	"github.com/Faultbox/midgard-tilemap/internal/engine/renderer/shaders"
	"github.com/Faultbox/midgard-tilemap/internal/engine/window"
	"github.com/Faultbox/midgard-tilemap/internal/logger"
	"github.com/Faultbox/midgard-tilemap/internal/tilemap"
)

const windowTitle = "Midgard Tile Map"

// Game is the viewer instance.
type Game struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.TileMapRenderer
	input    *input.Input

	camera *camera.Camera2D
	zoom   *camera.ZoomController

	assets *assets.Manager
	atlas  *assets.Handle

	screenshots       *debug.ScreenshotCapture
	screenshotPending bool

	log *zap.Logger
}

// New creates the window, GL resources and the map, and starts loading the
// atlas in the background.
func New(cfg *config.Config) (*Game, error) {
	sampling, err := tilemap.ParseSampleMode(cfg.Render.Sampling)
	if err != nil {
		return nil, err
	}
	policy, err := camera.ParsePixelScrollPolicy(cfg.Input.PixelScroll)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:      cfg,
		log:         logger.Named("game"),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "tilemap"),
	}

	g.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("atlas", cfg.Map.Atlas),
		zap.Stringer("sampling", sampling),
		zap.String("pixel_scroll", string(policy)),
	)

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	reg, err := shaders.NewBuiltinRegistry()
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("registering shaders: %w", err)
	}
	g.log.Debug("shaders registered", zap.Any("keys", reg.Keys()))

	// Renderer AFTER window, since the OpenGL context must exist
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		QuadSize:   cfg.Map.QuadSize,
		Sampling:   sampling,
		ClearColor: cfg.Render.ClearColor,
	}, reg)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.renderer.SetIndexMap(tilemap.GenerateIndexMap(cfg.Map.IndexWidth, cfg.Map.IndexHeight))

	g.input = input.New()
	g.camera = camera.NewCamera2D()
	g.zoom = camera.NewZoomController(g.camera, policy)
	g.zoom.SetLineStep(cfg.Input.LineStep)

	g.assets = assets.NewManager(cfg.Data.AssetDir)
	g.atlas = g.assets.Load(cfg.Map.Atlas)

	g.log.Info("viewer initialized")
	return g, nil
}

// Run starts the frame loop. It returns an error when a frame cannot be
// completed, including a rejected scroll unit.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for g.running {
		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Zoom, one event at a time in arrival order
		if err := g.updateZoom(g.input.Scrolls()); err != nil {
			return err
		}

		// 3. Pick up finished asset loads
		g.updateAssets()

		// 4. Render
		g.renderer.Begin()
		g.renderer.Draw(g.camera)

		if g.screenshotPending {
			g.screenshotPending = false
			g.saveScreenshot()
		}

		// 5. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Debug.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %d FPS - scale %.3f", windowTitle, frameCount, g.camera.Scale))
			}
			g.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event carries window points; GL needs drawable pixels.
			g.renderer.Resize(g.window.DrawableSize())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.K_ESCAPE:
				g.running = false
			case sdl.K_F12:
				g.screenshotPending = true
			}
		}
	}
}

func (g *Game) updateZoom(scrolls []camera.Scroll) error {
	if len(scrolls) == 0 {
		return nil
	}

	before := g.camera.Scale
	if err := g.zoom.ApplyScroll(scrolls); err != nil {
		return fmt.Errorf("zoom: %w", err)
	}

	if g.camera.Scale != before {
		g.log.Debug("camera zoom",
			zap.Float32("from", before),
			zap.Float32("to", g.camera.Scale),
			zap.Int("events", len(scrolls)),
		)
	}
	return nil
}

func (g *Game) updateAssets() {
	for _, h := range g.assets.Poll() {
		if h != g.atlas {
			continue
		}
		if h.Ready() {
			g.renderer.SetAtlas(h.Image())
			continue
		}
		g.log.Warn("atlas unavailable, map will not be drawn",
			zap.Stringer("state", h.State()),
			zap.Error(h.Err()),
		)
	}
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.assets != nil {
		hits, misses := g.assets.Stats()
		g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
