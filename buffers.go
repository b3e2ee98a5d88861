package puzzle

import (
	"github.com/pkg/errors"

	"github.com/NSMBW-Community/puzzle-core/atlas"
	"github.com/NSMBW-Community/puzzle-core/edge"
	"github.com/NSMBW-Community/puzzle-core/objstream"
	"github.com/NSMBW-Community/puzzle-core/texel"
)

// Flat image geometry: the 256 tiles in a 16x16 grid, without atlas padding.
const (
	FlatImageSize = 384

	// FlatImageBytes is the byte length of the 384x384 BGRA8 flat image.
	FlatImageBytes = FlatImageSize * FlatImageSize * 4

	tilesPerFlatRow = FlatImageSize / atlas.TileSize
)

// ErrImageLength is returned when a flat image buffer is not exactly
// FlatImageBytes bytes.
var ErrImageLength = errors.New("puzzle: wrong flat image length")

// Load builds a tileset from the four decompressed archive buffers: the
// packed texture, the tile-behavior records, and the object stream with its
// metadata.
func Load(tex, behaviors, stream, meta []byte) (*Tileset, error) {
	bgra, err := texel.Decode(tex, true)
	if err != nil {
		return nil, errors.Wrap(err, "texture")
	}

	images, err := atlas.Unpack(bgra)
	if err != nil {
		return nil, errors.Wrap(err, "texture")
	}

	records, err := UnpackBehaviors(behaviors)
	if err != nil {
		return nil, err
	}

	objects, err := objstream.DecodeAll(stream, meta)
	if err != nil {
		return nil, errors.Wrap(err, "objects")
	}

	t := &Tileset{
		Objects: objects,
		Slot:    1,
		Unknown: make(map[string][]byte),
	}
	for i := range t.Tiles {
		t.Tiles[i] = &Tile{
			Image:    images[i],
			Behavior: records[i],
		}
	}

	// The slot isn't stored anywhere; recover it from the first tile
	// reference, the way the original editor does.
	if len(objects) > 0 && len(objects[0].Rows) > 0 && len(objects[0].Rows[0]) > 0 {
		t.Slot = objects[0].Rows[0][0].Slot & 3
	}

	return t, nil
}

// Save produces the four decompressed archive buffers from the tileset.
// Unknown entries are not included; the archive collaborator writes those
// back alongside these buffers.
func (t *Tileset) Save() (tex, behaviors, stream, meta []byte, err error) {
	images := make([][]byte, len(t.Tiles))
	for i, tile := range t.Tiles {
		images[i] = tile.Image
	}

	bgra, err := atlas.Pack(images)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "texture")
	}

	tex, err = texel.Encode(bgra)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "texture")
	}

	stream, meta, err = objstream.EncodeAll(t.Objects)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "objects")
	}

	return tex, t.PackBehaviors(), stream, meta, nil
}

// ExportImage flattens the 256 tiles into a 384x384 BGRA8 image, 16 tiles
// per row.
func (t *Tileset) ExportImage() []byte {
	out := make([]byte, FlatImageBytes)
	for i, tile := range t.Tiles {
		tx, ty := i%tilesPerFlatRow, i/tilesPerFlatRow
		dest := ty*atlas.TileSize*FlatImageSize*4 + tx*atlas.TileSize*4
		for y := 0; y < atlas.TileSize; y++ {
			copy(out[dest:dest+atlas.TileSize*4], tile.Image[y*atlas.TileSize*4:(y+1)*atlas.TileSize*4])
			dest += FlatImageSize * 4
		}
	}
	return out
}

// ImportImage replaces every tile's image from a 384x384 BGRA8 flat image,
// running the edge color repair on each imported tile.
func (t *Tileset) ImportImage(data []byte) error {
	if len(data) != FlatImageBytes {
		return errors.Wrapf(ErrImageLength, "expected %d bytes, got %d", FlatImageBytes, len(data))
	}

	for i := range t.Tiles {
		tx, ty := i%tilesPerFlatRow, i/tilesPerFlatRow
		src := ty*atlas.TileSize*FlatImageSize*4 + tx*atlas.TileSize*4

		img := make([]byte, TileImageBytes)
		for y := 0; y < atlas.TileSize; y++ {
			copy(img[y*atlas.TileSize*4:(y+1)*atlas.TileSize*4], data[src:src+atlas.TileSize*4])
			src += FlatImageSize * 4
		}

		if err := edge.Correct24(img); err != nil {
			return errors.Wrapf(err, "tile %d", i)
		}
		t.Tiles[i].Image = img
	}
	return nil
}
