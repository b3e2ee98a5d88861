package objstream

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

func appendRow(b []byte, row []TileRef) []byte {
	for _, t := range row {
		b = append(b, t.RowFlag, t.Tile, t.Slot)
	}
	return append(b, opEndRow)
}

func appendRows(b []byte, rows [][]TileRef) []byte {
	for _, row := range rows {
		b = appendRow(b, row)
	}
	return b
}

// Encode serializes one object back to its opcode stream. Encoding a decoded
// object reproduces the original bytes for any stream in canonical row order.
func Encode(o *Object) []byte {
	var b []byte

	switch {
	case !o.Sloped():
		b = appendRows(b, o.Rows)

	case o.reversed():
		b = append(b, o.Upper.Opcode)

		// The lower-part rows sit at the front in memory but are stored
		// after the upper opcode on disk. A single-row slope belongs
		// entirely to the lower part.
		first, last := o.Upper.Rows, o.Upper.Rows+o.Lower.Rows
		if o.Height == 1 {
			first, last = 0, 1
		}
		b = appendRows(b, o.Rows[first:last])

		if o.Height > 1 {
			b = append(b, o.Lower.Opcode)
			b = appendRows(b, o.Rows[:o.Upper.Rows])
		}

	default:
		b = append(b, o.Upper.Opcode)
		b = appendRows(b, o.Rows[:o.Upper.Rows])

		if o.Height > 1 {
			b = append(b, o.Lower.Opcode)
			b = appendRows(b, o.Rows[o.Upper.Rows:o.Height])
		}
	}

	return append(b, opEnd)
}

// EncodeAll serializes every object into one concatenated stream plus the
// paired metadata buffer of offset, width and height records.
func EncodeAll(objects []*Object) (stream, meta []byte, err error) {
	for i, o := range objects {
		if o.Width < 1 || o.Width > 0xff || o.Height < 1 || o.Height > 0xff {
			return nil, nil, errors.Wrapf(ErrObjectSize, "object %d: %dx%d", i, o.Width, o.Height)
		}
		if len(stream) > 0xffff {
			return nil, nil, errors.Wrapf(ErrOffset, "object %d starts at %d", i, len(stream))
		}

		var record [metaRecordSize]byte
		binary.BigEndian.PutUint16(record[0:2], uint16(len(stream)))
		record[2] = byte(o.Width)
		record[3] = byte(o.Height)

		meta = append(meta, record[:]...)
		stream = append(stream, Encode(o)...)
	}
	return stream, meta, nil
}
