// Package renderer draws the tile map quad with the tile-decoding material.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
	"github.com/Faultbox/midgard-tilemap/internal/engine/renderer/shaders"
	"github.com/Faultbox/midgard-tilemap/internal/engine/shader"
	"github.com/Faultbox/midgard-tilemap/internal/logger"
	"github.com/Faultbox/midgard-tilemap/internal/tilemap"
)

// Texture units used by the material.
const (
	unitTileMap = 0
	unitTileSet = 1
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	QuadSize   float32
	Sampling   tilemap.SampleMode
	ClearColor [4]float32
}

// TileMapRenderer draws one quad textured by the tile decoder.
type TileMapRenderer struct {
	config Config

	program *shader.Program

	vao uint32
	vbo uint32

	indexTex uint32
	atlasTex uint32
}

// New creates the renderer and its GL resources.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, reg *shaders.Registry) (*TileMapRenderer, error) {
	if cfg.QuadSize <= 0 {
		cfg.QuadSize = tilemap.DefaultQuadSize
	}
	r := &TileMapRenderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Single sample: the material does its own optional multi-tap.
	gl.Disable(gl.MULTISAMPLE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	vertSrc, err := reg.Source(shaders.TileMapVertex)
	if err != nil {
		return nil, err
	}
	fragSrc, err := reg.Source(shaders.TileMapFragment)
	if err != nil {
		return nil, err
	}
	r.program, err = shader.Compile(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("tile map shader: %w", err)
	}

	r.createQuad()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// createQuad builds a unit quad centered at the origin. The top edge has
// v=0 so index map row 0 is drawn at the top.
func (r *TileMapRenderer) createQuad() {
	vertices := []float32{
		// Position (XY), TexCoord (UV)
		-0.5, -0.5, 0.0, 1.0, // Bottom-left
		0.5, -0.5, 1.0, 1.0, // Bottom-right
		0.5, 0.5, 1.0, 0.0, // Top-right
		-0.5, -0.5, 0.0, 1.0, // Bottom-left
		0.5, 0.5, 1.0, 0.0, // Top-right
		-0.5, 0.5, 0.0, 0.0, // Top-left
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position attribute (location 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("map quad created", zap.Uint32("vao", r.vao), zap.Uint32("vbo", r.vbo))
}

// SetIndexMap uploads the tile-index texture, replacing any previous one.
func (r *TileMapRenderer) SetIndexMap(m *tilemap.IndexMap) {
	deleteTexture(&r.indexTex)
	r.indexTex = uploadIndexMap(m)
	logger.Debug("index map uploaded",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Uint32("texture", r.indexTex),
	)
}

// SetAtlas uploads the tile-set atlas, replacing any previous one.
func (r *TileMapRenderer) SetAtlas(img *image.RGBA) {
	deleteTexture(&r.atlasTex)
	r.atlasTex = uploadRGBA(img)
	b := img.Bounds()
	logger.Debug("atlas uploaded",
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Uint32("texture", r.atlasTex),
	)
}

// Ready reports whether both textures are present.
func (r *TileMapRenderer) Ready() bool {
	return r.indexTex != 0 && r.atlasTex != 0
}

// Resize handles window resize.
func (r *TileMapRenderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame.
func (r *TileMapRenderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw renders the map quad as seen by cam. Until the atlas has arrived the
// frame stays at the clear color. Nothing is drawn into an empty viewport.
func (r *TileMapRenderer) Draw(cam *camera.Camera2D) {
	if !r.Ready() || r.config.Width <= 0 || r.config.Height <= 0 {
		return
	}

	transform := cam.QuadTransform(r.config.Width, r.config.Height, r.config.QuadSize)

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uTransform"), 1, false, transform.Ptr())
	gl.Uniform1i(r.program.Uniform("uTileMap"), unitTileMap)
	gl.Uniform1i(r.program.Uniform("uTileSet"), unitTileSet)
	gl.Uniform1f(r.program.Uniform("uTileSize"), tilemap.TilePixelSize)
	gl.Uniform2f(r.program.Uniform("uViewSize"), float32(r.config.Width), float32(r.config.Height))
	gl.Uniform1i(r.program.Uniform("uSampling"), int32(r.config.Sampling))

	gl.ActiveTexture(gl.TEXTURE0 + unitTileMap)
	gl.BindTexture(gl.TEXTURE_2D, r.indexTex)
	gl.ActiveTexture(gl.TEXTURE0 + unitTileSet)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *TileMapRenderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Close cleans up renderer resources.
func (r *TileMapRenderer) Close() {
	logger.Info("closing renderer")
	deleteTexture(&r.indexTex)
	deleteTexture(&r.atlasTex)
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}
