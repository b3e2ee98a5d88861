package objstream

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSingleTriple(t *testing.T) {
	o, err := Decode([]byte{0x00, 0x01, 0x02, 0xfe, 0xff}, 0, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, o.Width)
	assert.Equal(t, 1, o.Height)
	assert.Equal(t, [][]TileRef{{{RowFlag: 0, Tile: 1, Slot: 2}}}, o.Rows)
	assert.False(t, o.Sloped())
}

var roundTripTests = []struct {
	name string
	o    *Object
}{
	{
		"flat 3x2",
		&Object{
			Width: 3, Height: 2,
			Rows: [][]TileRef{
				{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}},
				{{0, 4, 1}, {1, 5, 1}, {2, 6, 1}},
			},
		},
	},
	{
		"slope, single row",
		&Object{
			Width: 2, Height: 1,
			Rows:  [][]TileRef{{{0, 10, 1}, {0, 11, 1}}},
			Upper: Slope{Opcode: 0x84, Rows: 1},
		},
	},
	{
		"reverse slope, single row",
		&Object{
			Width: 2, Height: 1,
			Rows:  [][]TileRef{{{0, 10, 1}, {0, 11, 1}}},
			Upper: Slope{Opcode: 0x82, Rows: 1},
		},
	},
	{
		"slope with both parts",
		&Object{
			Width: 2, Height: 3,
			Rows: [][]TileRef{
				{{0, 1, 1}, {0, 2, 1}},
				{{0, 3, 1}, {0, 4, 1}},
				{{0, 5, 1}, {0, 6, 1}},
			},
			Upper: Slope{Opcode: 0x84, Rows: 2},
			Lower: Slope{Opcode: 0x84, Rows: 1},
		},
	},
	{
		"reverse slope, multiple rows",
		&Object{
			Width: 2, Height: 2,
			Rows: [][]TileRef{
				{{0, 1, 1}, {0, 2, 1}},
				{{0, 3, 1}, {0, 4, 1}},
			},
			Upper: Slope{Opcode: 0x82, Rows: 1},
			Lower: Slope{Opcode: 0x84, Rows: 1},
		},
	},
}

func TestRoundTrip(t *testing.T) {
	for _, test := range roundTripTests {
		t.Run(test.name, func(t *testing.T) {
			stream := Encode(test.o)

			decoded, err := Decode(stream, 0, test.o.Width, test.o.Height)
			require.NoError(t, err)
			assert.Equal(t, test.o, decoded)

			// Re-encoding a decoded object must be byte-identical.
			assert.Equal(t, stream, Encode(decoded))
		})
	}
}

// Reverse slopes store the lower-part rows before the upper opcode's own;
// decode must move them back to the front of the grid.
func TestDecodeReverseRotation(t *testing.T) {
	stream := []byte{
		0x82,             // upper opcode, reverse
		0x00, 0x01, 0x01, // row counted by the upper slope
		0xfe,
		0x84,             // lower opcode
		0x00, 0x09, 0x01, // row counted by the lower slope; rendered first
		0xfe,
		0xff,
	}

	o, err := Decode(stream, 0, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, [][]TileRef{
		{{0, 9, 1}},
		{{0, 1, 1}},
	}, o.Rows)
	assert.Equal(t, Slope{Opcode: 0x82, Rows: 1}, o.Upper)
	assert.Equal(t, Slope{Opcode: 0x84, Rows: 1}, o.Lower)
}

var malformedTests = []struct {
	name   string
	stream []byte
	offset int
}{
	{"empty stream", nil, 0},
	{"offset past end", []byte{0xff}, 1},
	{"negative offset", []byte{0xff}, -1},
	{"missing terminator", []byte{0x00, 0x01, 0x02, 0xfe}, 0},
	{"truncated triple", []byte{0x00, 0x01}, 0},
	{"truncated triple after row", []byte{0x00, 0x01, 0x02, 0xfe, 0x00}, 0},
	{"slope then truncation", []byte{0x84}, 0},
}

func TestDecodeMalformed(t *testing.T) {
	for _, test := range malformedTests {
		t.Run(test.name, func(t *testing.T) {
			o, err := Decode(test.stream, test.offset, 1, 1)
			assert.Nil(t, o)
			assert.Equal(t, ErrMalformed, errors.Cause(err))
		})
	}
}

func TestDecodeAllEncodeAll(t *testing.T) {
	objects := []*Object{roundTripTests[0].o, roundTripTests[3].o}

	stream, meta, err := EncodeAll(objects)
	require.NoError(t, err)
	require.Len(t, meta, 2*metaRecordSize)

	// Second record must point past the first object's stream.
	assert.Equal(t, []byte{0x00, 0x00}, meta[0:2])
	assert.NotEqual(t, []byte{0x00, 0x00}, meta[4:6])

	decoded, err := DecodeAll(stream, meta)
	require.NoError(t, err)
	assert.Equal(t, objects, decoded)

	stream2, meta2, err := EncodeAll(decoded)
	require.NoError(t, err)
	assert.Equal(t, stream, stream2)
	assert.Equal(t, meta, meta2)
}

func TestDecodeAllValidation(t *testing.T) {
	_, err := DecodeAll([]byte{0xff}, make([]byte, 6))
	assert.Equal(t, ErrMetaLength, errors.Cause(err))
}

func TestEncodeAllValidation(t *testing.T) {
	_, _, err := EncodeAll([]*Object{{Width: 0, Height: 1}})
	assert.Equal(t, ErrObjectSize, errors.Cause(err))

	// Enough 21-byte objects to push an offset past 0xffff.
	big := roundTripTests[0].o
	var objects []*Object
	for i := 0; i < 4000; i++ {
		objects = append(objects, big)
	}
	_, _, err = EncodeAll(objects)
	assert.Equal(t, ErrOffset, errors.Cause(err))
}
