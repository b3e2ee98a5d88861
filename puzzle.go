/*
Package puzzle is a library for editing New Super Mario Bros. Wii tileset
assets: a fixed palette of 256 24x24 tiles with per-tile behavior records,
plus a list of multi-tile objects.

The package and its subpackages form the binary transcoder between the
in-memory model and the console's formats: the packed texel atlas (texel,
atlas), the object opcode stream (objstream) and the edge color repair
applied to imported tile art (edge). The surrounding archive container and
LZ compression are handled by outside collaborators; this library only
consumes and produces the decompressed buffers.
*/
package puzzle

import "github.com/NSMBW-Community/puzzle-core/objstream"

// Aliases so callers building tilesets don't need to import objstream
// directly.
type (
	Object  = objstream.Object
	TileRef = objstream.TileRef
	Slope   = objstream.Slope
)

// Tile is one of a tileset's 256 tiles: 24x24 BGRA8 image data plus the
// 8-byte bit-packed behavior record (collision shape, terrain type,
// passability and parameters). The record is opaque at this layer; only the
// game interprets it.
type Tile struct {
	Image    []byte
	Behavior [8]byte
}

// NumTiles is the fixed tile count of every tileset.
const NumTiles = 256

// TileImageBytes is the byte length of one tile's BGRA8 image.
const TileImageBytes = 24 * 24 * 4

// Tileset holds exactly 256 tiles, an ordered object list, and whatever
// unrecognized archive entries rode along with the loaded file, preserved
// byte for byte for saving.
type Tileset struct {
	Tiles   [NumTiles]*Tile
	Objects []*Object

	// Slot is the tileset slot (Pa0-Pa3) that new tile references draw
	// from.
	Slot byte

	Unknown map[string][]byte
}

// New returns a blank tileset: 256 fully transparent black tiles, no
// objects.
func New() *Tileset {
	t := &Tileset{
		Unknown: make(map[string][]byte),
	}
	for i := range t.Tiles {
		t.Tiles[i] = &Tile{Image: make([]byte, TileImageBytes)}
	}
	return t
}

// Clear resets the tileset wholesale, as when opening a new file.
func (t *Tileset) Clear() {
	for i := range t.Tiles {
		t.Tiles[i] = &Tile{Image: make([]byte, TileImageBytes)}
	}
	t.Objects = nil
	t.Slot = 0
	t.Unknown = make(map[string][]byte)
}

// AddObject appends a new 1x1 object drawing blank from the current slot.
func (t *Tileset) AddObject() *Object {
	o := &Object{
		Width:  1,
		Height: 1,
		Rows:   [][]TileRef{{{Slot: t.Slot}}},
	}
	t.Objects = append(t.Objects, o)
	return o
}

// RemoveObject deletes the object at index. Objects after it shift down, so
// callers must not assume identity persists across removals.
func (t *Tileset) RemoveObject(index int) {
	if index < 0 || index >= len(t.Objects) {
		return
	}
	t.Objects = append(t.Objects[:index], t.Objects[index+1:]...)
}

// ClearObjects drops every object.
func (t *Tileset) ClearObjects() {
	t.Objects = nil
}

// ClearBehaviors zeroes every tile's behavior record.
func (t *Tileset) ClearBehaviors() {
	for _, tile := range t.Tiles {
		tile.Behavior = [8]byte{}
	}
}

// SetSlot changes the tileset slot and rewrites the low 2 bits of every
// non-empty tile reference to draw from it, keeping the item-override bits.
// An all-zero reference is updated only at the start of its row, matching
// the original editor.
func (t *Tileset) SetSlot(slot byte) {
	t.Slot = slot & 3
	for _, o := range t.Objects {
		for _, row := range o.Rows {
			for i, ref := range row {
				empty := ref.RowFlag == 0 && ref.Tile == 0 && ref.Slot == 0
				if !empty || i == 0 {
					row[i].Slot = ref.Slot&0xfc | t.Slot
				}
			}
		}
	}
}
