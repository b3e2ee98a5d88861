package atlas

import "github.com/pkg/errors"

// Pack arranges exactly 256 tile images into a BGRA8 atlas, filling each
// cell's 4-pixel border with clamp-to-edge copies of the active region:
// every row replicates its first and last pixel outward, and the first and
// last rows are themselves replicated into the border rows above and below.
// Corners end up as copies of the nearest active corner pixel.
func Pack(tiles [][]byte) ([]byte, error) {
	if len(tiles) != NumTiles {
		return nil, errors.Wrapf(ErrTileCount, "expected %d tiles, got %d", NumTiles, len(tiles))
	}
	for i, tile := range tiles {
		if len(tile) != TileBytes {
			return nil, errors.Wrapf(ErrTileLength, "tile %d: expected %d bytes, got %d", i, TileBytes, len(tile))
		}
	}

	a := make([]byte, AtlasBytes)
	row := make([]byte, cellSize*4)

	for i, tile := range tiles {
		dest := cellOrigin(i)
		for y := 0; y < TileSize; y++ {
			src := tile[y*TileSize*4 : (y+1)*TileSize*4]

			for x := 0; x < border; x++ {
				copy(row[x*4:x*4+4], src[:4])
				copy(row[(border+TileSize+x)*4:], src[len(src)-4:])
			}
			copy(row[border*4:], src)

			copies := 1
			if y == 0 || y == TileSize-1 {
				// Clamp the tile's top/bottom row into the border rows.
				copies = 1 + border
			}
			for c := 0; c < copies; c++ {
				copy(a[dest:dest+cellSize*4], row)
				dest += stride
			}
		}
	}
	return a, nil
}
