package puzzle

import "github.com/pkg/errors"

// BehaviorBufferSize is the exact byte length of the tile-behavior buffer:
// one 8-byte record per tile, in tile order.
const BehaviorBufferSize = NumTiles * 8

// ErrBehaviorLength is returned when a behavior buffer is not exactly
// BehaviorBufferSize bytes.
var ErrBehaviorLength = errors.New("puzzle: wrong behavior buffer length")

// UnpackBehaviors splits a behavior buffer into its 256 records.
func UnpackBehaviors(buf []byte) ([NumTiles][8]byte, error) {
	var records [NumTiles][8]byte
	if len(buf) != BehaviorBufferSize {
		return records, errors.Wrapf(ErrBehaviorLength, "expected %d bytes, got %d", BehaviorBufferSize, len(buf))
	}
	for i := range records {
		copy(records[i][:], buf[i*8:(i+1)*8])
	}
	return records, nil
}

// PackBehaviors concatenates the tileset's behavior records into the
// fixed-size buffer.
func (t *Tileset) PackBehaviors() []byte {
	buf := make([]byte, BehaviorBufferSize)
	for i, tile := range t.Tiles {
		copy(buf[i*8:(i+1)*8], tile.Behavior[:])
	}
	return buf
}
