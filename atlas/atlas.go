/*
Package atlas maps the 256 logical tiles of a tileset into and out of the
padded physical texture atlas.

The atlas is 1024 by 256 pixels of BGRA8, divided into 32 by 32 pixel cells,
32 cells per row over 8 rows. Each cell holds one tile's 24 by 24 active
region at offset (4,4); the surrounding 4-pixel border replicates the nearest
active edge pixel so that hardware bilinear filtering never samples a
neighboring tile.
*/
package atlas

import "github.com/pkg/errors"

const (
	// TileSize is the width and height of one tile's active region.
	TileSize = 24

	// TileBytes is the byte length of one 24x24 BGRA8 tile image.
	TileBytes = TileSize * TileSize * 4

	// NumTiles is the fixed tile count of every tileset.
	NumTiles = 256

	cellSize    = 32
	cellsPerRow = 32
	border      = 4

	atlasWidth  = cellSize * cellsPerRow
	atlasHeight = cellSize * (NumTiles / cellsPerRow)
	stride      = atlasWidth * 4

	// AtlasBytes is the byte length of the full BGRA8 atlas.
	AtlasBytes = atlasWidth * atlasHeight * 4
)

var (
	// ErrAtlasLength is returned when an atlas buffer is not exactly
	// AtlasBytes bytes.
	ErrAtlasLength = errors.New("atlas: wrong atlas buffer length")

	// ErrTileCount is returned when packing anything other than exactly
	// NumTiles tiles.
	ErrTileCount = errors.New("atlas: wrong tile count")

	// ErrTileLength is returned when a tile image is not exactly TileBytes
	// bytes.
	ErrTileLength = errors.New("atlas: wrong tile image length")
)

// cellOrigin returns the byte offset of tile i's cell corner in the atlas.
func cellOrigin(i int) int {
	row, col := i/cellsPerRow, i%cellsPerRow
	return row*cellSize*stride + col*cellSize*4
}
