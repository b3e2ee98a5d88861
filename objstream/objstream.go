/*
Package objstream implements the opcode byte-stream describing tileset
objects.

An object is a rectangular grid of tile references with optional diagonal
slope geometry. On disk each object is a self-terminating stream scanned
byte by byte: 0xff ends the object, 0xfe ends the current row, any other
byte with the high bit set is a slope opcode (the first one met belongs to
the upper slope, the second to the lower), and anything else begins a
three-byte tile reference of row flag, tile index and palette slot.

Slope opcodes with bit 1 set mark a reverse slope: its rows are stored
main-part-last but rendered main-part-first, so decoding moves the trailing
lower-part rows to the front of the grid and encoding mirrors the move.

Objects are paired with a metadata buffer of one four-byte record each: a
big-endian 16-bit byte offset into the stream, then width and height bytes.
*/
package objstream

import "github.com/pkg/errors"

const (
	opEnd    = 0xff
	opEndRow = 0xfe

	// slopeFlag marks a byte as a slope opcode, slopeReverse marks the
	// slope as reverse-oriented.
	slopeFlag    = 0x80
	slopeReverse = 0x02

	// metaRecordSize is the byte length of one object metadata record.
	metaRecordSize = 4
)

var (
	// ErrMalformed is returned when an object stream violates the opcode
	// grammar: truncation before the 0xff terminator, or mid tile triple.
	ErrMalformed = errors.New("objstream: malformed object stream")

	// ErrMetaLength is returned when a metadata buffer is not a whole
	// number of records.
	ErrMetaLength = errors.New("objstream: wrong metadata buffer length")

	// ErrOffset is returned when an encoded stream grows past what a
	// 16-bit metadata offset can address.
	ErrOffset = errors.New("objstream: object offset exceeds 16 bits")

	// ErrObjectSize is returned when an object's dimensions cannot be
	// represented in a metadata record.
	ErrObjectSize = errors.New("objstream: object dimensions out of range")
)

// TileRef is one cell of an object's grid: a 0-3 stretch/repeat row flag,
// a tile index, and a palette slot byte whose low 2 bits select the source
// tileset slot while the remaining bits carry the item-override index.
type TileRef struct {
	RowFlag byte
	Tile    byte
	Slot    byte
}

// Slope is one half of an object's slope geometry. A zero opcode means the
// half is absent.
type Slope struct {
	Opcode byte
	Rows   int
}

// Object is a decoded tileset object. Rows is indexed [y][x]; Width and
// Height come from the object's metadata record, not from the stream.
type Object struct {
	Width  int
	Height int
	Rows   [][]TileRef
	Upper  Slope
	Lower  Slope
}

// Sloped reports whether the object carries any slope geometry.
func (o *Object) Sloped() bool {
	return o.Upper.Opcode != 0
}

// reversed reports whether the object's slope stores its rows in inverted
// order on disk.
func (o *Object) reversed() bool {
	return o.Upper.Opcode&slopeFlag != 0 && o.Upper.Opcode&slopeReverse != 0
}
