package objstream

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Decode parses one object from stream starting at offset. Width and height
// come from the object's metadata record. Any grammar violation returns
// ErrMalformed without producing a partial object.
func Decode(stream []byte, offset, width, height int) (*Object, error) {
	if offset < 0 || offset >= len(stream) {
		return nil, errors.Wrapf(ErrMalformed, "offset %d outside stream of %d bytes", offset, len(stream))
	}

	o := &Object{
		Width:  width,
		Height: height,
		Rows:   [][]TileRef{{}},
	}

	pos := offset
	for {
		if pos >= len(stream) {
			return nil, errors.Wrap(ErrMalformed, "missing terminator")
		}
		b := stream[pos]

		if b == opEnd {
			break
		}

		switch {
		case b == opEndRow:
			o.Rows = append(o.Rows, []TileRef{})

			// Rows between the two slope opcodes belong to the upper
			// part, rows after the second to the lower part.
			if o.Upper.Opcode != 0 && o.Lower.Opcode == 0 {
				o.Upper.Rows++
			}
			if o.Lower.Opcode != 0 {
				o.Lower.Rows++
			}
			pos++

		case b&slopeFlag != 0:
			if o.Upper.Opcode == 0 {
				o.Upper.Opcode = b
			} else {
				o.Lower.Opcode = b
			}
			pos++

		default:
			if pos+3 > len(stream) {
				return nil, errors.Wrap(ErrMalformed, "truncated tile triple")
			}
			row := len(o.Rows) - 1
			o.Rows[row] = append(o.Rows[row], TileRef{
				RowFlag: stream[pos],
				Tile:    stream[pos+1],
				Slot:    stream[pos+2],
			})
			pos += 3
		}
	}

	// Every well-formed row ends with 0xfe, leaving one empty open row
	// behind at the terminator.
	o.Rows = o.Rows[:len(o.Rows)-1]

	if o.reversed() {
		// Reverse slopes store the lower part last; rendering order
		// wants it first.
		if k := o.Lower.Rows; k > 0 && k <= len(o.Rows) {
			rotated := make([][]TileRef, 0, len(o.Rows))
			rotated = append(rotated, o.Rows[len(o.Rows)-k:]...)
			rotated = append(rotated, o.Rows[:len(o.Rows)-k]...)
			o.Rows = rotated
		}
	}

	return o, nil
}

// DecodeAll parses every object referenced by the metadata buffer, in
// record order.
func DecodeAll(stream, meta []byte) ([]*Object, error) {
	if len(meta)%metaRecordSize != 0 {
		return nil, errors.Wrapf(ErrMetaLength, "%d bytes is not a whole number of %d-byte records", len(meta), metaRecordSize)
	}

	objects := make([]*Object, 0, len(meta)/metaRecordSize)
	for i := 0; i < len(meta); i += metaRecordSize {
		offset := int(binary.BigEndian.Uint16(meta[i : i+2]))
		width := int(meta[i+2])
		height := int(meta[i+3])

		o, err := Decode(stream, offset, width, height)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d", i/metaRecordSize)
		}
		objects = append(objects, o)
	}
	return objects, nil
}
