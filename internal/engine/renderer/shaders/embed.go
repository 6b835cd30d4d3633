// Package shaders provides the embedded GLSL sources and the registry the
// renderer looks them up in.
package shaders

import _ "embed"

// TileMapVertexShader positions the map quad.
//
//go:embed tilemap.vert
var TileMapVertexShader string

// TileMapFragmentShader decodes the tile-index texture against the atlas.
//
//go:embed tilemap.frag
var TileMapFragmentShader string
