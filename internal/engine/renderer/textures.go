package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-tilemap/internal/tilemap"
)

// Both textures use nearest filtering and clamp-to-edge without mipmaps;
// any filtering would blend tile ids and corrupt the decode.
func setSampling() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
}

// uploadIndexMap creates an RG8 texture from m.
func uploadIndexMap(m *tilemap.IndexMap) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	// Rows of 2-byte texels are not 4-byte aligned for odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG8, int32(m.Width), int32(m.Height), 0,
		gl.RG, gl.UNSIGNED_BYTE, gl.Ptr(m.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	setSampling()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// uploadRGBA creates an RGBA8 texture from img. Row 0 of the image becomes
// t=0.
func uploadRGBA(img *image.RGBA) uint32 {
	b := img.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	setSampling()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func deleteTexture(tex *uint32) {
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}
