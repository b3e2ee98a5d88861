package atlas

import "github.com/pkg/errors"

// Unpack extracts the 256 tile images from a BGRA8 atlas, discarding every
// cell's replicated border.
func Unpack(a []byte) ([][]byte, error) {
	if len(a) != AtlasBytes {
		return nil, errors.Wrapf(ErrAtlasLength, "expected %d bytes, got %d", AtlasBytes, len(a))
	}

	tiles := make([][]byte, NumTiles)
	for i := range tiles {
		tile := make([]byte, TileBytes)
		src := cellOrigin(i) + border*stride + border*4
		for y := 0; y < TileSize; y++ {
			copy(tile[y*TileSize*4:(y+1)*TileSize*4], a[src:src+TileSize*4])
			src += stride
		}
		tiles[i] = tile
	}
	return tiles, nil
}
