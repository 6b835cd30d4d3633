// Package main renders the tile map to a PNG on the CPU, using the same
// decode as the viewer's fragment shader.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tilemap/internal/assets"
	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
	"github.com/Faultbox/midgard-tilemap/internal/engine/debug"
	"github.com/Faultbox/midgard-tilemap/internal/logger"
	"github.com/Faultbox/midgard-tilemap/internal/tilemap"
)

func main() {
	atlasPath := flag.String("atlas", "assets/test-tileset.png", "Tile-set atlas image")
	outPath := flag.String("out", "tilemap.png", "Output PNG")
	width := flag.Int("width", 512, "Output width in pixels")
	height := flag.Int("height", 512, "Output height in pixels")
	sampling := flag.String("sampling", "single", "Sampling mode (single, multitap)")
	scale := flag.Float64("scale", 0.25, "Camera scale, clamped to [1/8, 1]")
	indexW := flag.Int("index-width", tilemap.DefaultIndexWidth, "Index map width in cells")
	indexH := flag.Int("index-height", tilemap.DefaultIndexHeight, "Index map height in cells")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*atlasPath, *outPath, *width, *height, *sampling, float32(*scale), *indexW, *indexH); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(atlasPath, outPath string, width, height int, sampling string, scale float32, indexW, indexH int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", width, height)
	}

	mode, err := tilemap.ParseSampleMode(sampling)
	if err != nil {
		return err
	}

	atlas, err := assets.NewManager(filepath.Dir(atlasPath)).LoadSync(filepath.Base(atlasPath))
	if err != nil {
		return err
	}

	dec, err := tilemap.NewDecoder(tilemap.GenerateIndexMap(indexW, indexH), atlas)
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	cam := camera.NewCamera2D()
	cam.SetScale(scale)

	view := tilemap.DefaultView()
	view.Scale = cam.Scale
	view.Background = color.RGBA{R: 25, G: 25, B: 38, A: 255}

	logger.Debug("rendering",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("sampling", mode),
		zap.Float32("scale", cam.Scale),
	)

	img := dec.Render(width, height, view, mode)
	if err := debug.WritePNG(outPath, img); err != nil {
		return err
	}

	logger.Info("tile map rendered", zap.String("out", outPath))
	return nil
}
