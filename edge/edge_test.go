package edge

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPixel(data []byte, w, x, y int, b, g, r, a byte) {
	offs := (y*w + x) * 4
	data[offs], data[offs+1], data[offs+2], data[offs+3] = b, g, r, a
}

// A transparent pixel with three non-transparent neighbors of RGB
// (10,20,30), (20,30,40) and (30,10,50) gets the floor of the per-channel
// mean: (20,20,40).
func TestCorrectAveragesNeighbors(t *testing.T) {
	data := make([]byte, 3*3*4)
	setPixel(data, 3, 0, 0, 30, 20, 10, 0xff)
	setPixel(data, 3, 1, 0, 40, 30, 20, 0xff)
	setPixel(data, 3, 2, 0, 50, 10, 30, 0xff)

	require.NoError(t, Correct(data, 3, 3))

	offs := (1*3 + 1) * 4
	assert.Equal(t, byte(40), data[offs], "blue")
	assert.Equal(t, byte(20), data[offs+1], "green")
	assert.Equal(t, byte(20), data[offs+2], "red")
	assert.Equal(t, byte(0), data[offs+3], "alpha must stay zero")
}

func TestCorrectLeavesIsolatedPixels(t *testing.T) {
	data := make([]byte, 3*3*4)
	setPixel(data, 3, 1, 1, 7, 7, 7, 0)

	require.NoError(t, Correct(data, 3, 3))

	offs := (1*3 + 1) * 4
	assert.Equal(t, []byte{7, 7, 7, 0}, data[offs:offs+4])
}

// Corrections must come from original neighbor values only: a corrected
// pixel stays transparent and so never feeds a later pixel's average.
func TestCorrectUsesOriginalValues(t *testing.T) {
	// Transparent pixel at (0,0) gets corrected first; (1,0)'s average
	// must still only see the one opaque pixel at (2,0).
	data := make([]byte, 3*1*4)
	setPixel(data, 3, 2, 0, 90, 60, 30, 0xff)

	require.NoError(t, Correct(data, 3, 1))

	assert.Equal(t, []byte{0, 0, 0, 0}, data[0:4], "no opaque neighbor")
	assert.Equal(t, []byte{90, 60, 30, 0}, data[4:8])
}

func TestCorrectValidation(t *testing.T) {
	assert.Equal(t, ErrLength, errors.Cause(Correct(make([]byte, 100), 24, 24)))
	assert.Equal(t, ErrLength, errors.Cause(Correct24(make([]byte, 100))))
}

func randomTile(rng *rand.Rand) []byte {
	data := make([]byte, len24)
	rng.Read(data)
	// Random bytes are almost never zero in the alpha channel; knock
	// half of the pixels transparent so the repair has work to do.
	for offs := 3; offs < len24; offs += 4 {
		if rng.Intn(2) == 0 {
			data[offs] = 0
		}
	}
	return data
}

// The generic and 24x24-specialized implementations are a conformance pair:
// byte-identical output on every input.
func TestCorrect24Conformance(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))

	for i := 0; i < 100; i++ {
		generic := randomTile(rng)
		specialized := append([]byte(nil), generic...)

		require.NoError(t, Correct(generic, size24, size24))
		require.NoError(t, Correct24(specialized))

		require.Equal(t, generic, specialized, "iteration %d", i)
	}
}

var conformanceEdgeCases = []struct {
	name string
	fill func(data []byte)
}{
	{"all transparent", func(data []byte) {}},
	{"all opaque", func(data []byte) {
		for offs := 3; offs < len24; offs += 4 {
			data[offs] = 0xff
		}
	}},
	{"single opaque corner", func(data []byte) {
		setPixel(data, size24, 0, 0, 1, 2, 3, 0xff)
	}},
	{"opaque interior cross", func(data []byte) {
		setPixel(data, size24, 12, 11, 10, 10, 10, 0xff)
		setPixel(data, size24, 11, 12, 20, 20, 20, 0xff)
		setPixel(data, size24, 13, 12, 30, 30, 30, 0xff)
		setPixel(data, size24, 12, 13, 45, 45, 45, 0xff)
	}},
}

func TestCorrect24ConformanceDirected(t *testing.T) {
	for _, test := range conformanceEdgeCases {
		t.Run(test.name, func(t *testing.T) {
			generic := make([]byte, len24)
			test.fill(generic)
			specialized := append([]byte(nil), generic...)

			require.NoError(t, Correct(generic, size24, size24))
			require.NoError(t, Correct24(specialized))

			assert.Equal(t, generic, specialized)
		})
	}
}

type access struct {
	write bool
	index int
}

// mockBuffer records the exact order of reads and writes the generic pass
// performs.
type mockBuffer struct {
	data []byte
	log  []access
}

func (m *mockBuffer) at(i int) byte {
	m.log = append(m.log, access{false, i})
	return m.data[i]
}

func (m *mockBuffer) set(i int, v byte) {
	m.log = append(m.log, access{true, i})
	m.data[i] = v
}

// Differential harness: the generic pass over a 2x1 image with a transparent
// left pixel and an opaque right pixel must touch the buffer in exactly the
// expected order.
func TestCorrectAccessOrder(t *testing.T) {
	m := &mockBuffer{data: []byte{
		0, 0, 0, 0, // (0,0) transparent
		1, 2, 3, 0xff, // (1,0) opaque
	}}

	correct(m, 2, 1)

	expected := []access{
		{false, 3}, // (0,0) alpha
		{false, 7}, // neighbor (1,0) alpha
		{false, 4}, {false, 5}, {false, 6}, // neighbor BGR
		{true, 0}, {true, 1}, {true, 2}, // corrected BGR
		{false, 7}, // (1,0) alpha, not transparent
	}
	assert.Equal(t, expected, m.log)
	assert.Equal(t, []byte{1, 2, 3, 0, 1, 2, 3, 0xff}, m.data)
}

func BenchmarkCorrect(b *testing.B) {
	rng := rand.New(rand.NewSource(1234))
	data := randomTile(rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := append([]byte(nil), data...)
		Correct(buf, size24, size24)
	}
}

func BenchmarkCorrect24(b *testing.B) {
	rng := rand.New(rand.NewSource(1234))
	data := randomTile(rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := append([]byte(nil), data...)
		Correct24(buf)
	}
}
