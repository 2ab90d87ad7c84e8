package rle

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(index uint8, n int) []uint8 {
	return bytes.Repeat([]byte{index}, n)
}

func TestEncode(t *testing.T) {
	tables := []struct {
		name    string
		indices []uint8
		runs    []Run
	}{
		{"empty", nil, nil},
		{"single", []uint8{7}, []Run{{1, 7}}},
		{"pairs", []uint8{0, 0, 1, 1}, []Run{{2, 0}, {2, 1}}},
		{"alternating", []uint8{0, 1, 0, 1}, []Run{{1, 0}, {1, 1}, {1, 0}, {1, 1}}},
		{"exactly max", repeat(3, MaxRun), []Run{{MaxRun, 3}}},
		{"split at max", repeat(3, MaxRun+1), []Run{{MaxRun, 3}, {1, 3}}},
		{"long", append(repeat(1, 600), 2), []Run{{MaxRun, 1}, {MaxRun, 1}, {90, 1}, {1, 2}}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			runs := Encode(table.indices)
			assert.Equal(t, table.runs, runs)
			assert.Equal(t, len(table.indices), Sum(runs))

			for i, r := range runs {
				assert.NotZero(t, r.Length)
				if i > 0 && runs[i-1].Index == r.Index {
					assert.Equal(t, uint8(MaxRun), runs[i-1].Length)
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	var indices []uint8
	for i := 0; i < 2000; i++ {
		indices = append(indices, uint8(i/37%5))
	}
	indices = append(indices, repeat(9, 1000)...)

	b := Append(nil, Encode(indices))
	assert.Equal(t, 0, len(b)%2)

	got, err := Decode(bytes.NewReader(b), len(indices))
	require.NoError(t, err)
	assert.Equal(t, indices, got)
}

func TestDecode(t *testing.T) {
	tables := []struct {
		name   string
		stream []byte
		n      int
		want   []uint8
		err    error
	}{
		{"nothing expected", nil, 0, []uint8{}, nil},
		{"exact", []byte{2, 0, 2, 1}, 4, []uint8{0, 0, 1, 1}, nil},
		{"trailing data is left unread", []byte{1, 5, 9, 9}, 1, []uint8{5}, nil},
		{"empty stream", nil, 1, nil, io.ErrUnexpectedEOF},
		{"missing index", []byte{2}, 2, nil, io.ErrUnexpectedEOF},
		{"short", []byte{2, 0}, 3, nil, io.ErrUnexpectedEOF},
		{"overrun", []byte{2, 0, 2, 1}, 3, nil, ErrOverrun},
		{"zero run", []byte{0, 1, 1, 1}, 1, nil, ErrZeroRun},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader(table.stream), table.n)
			if table.err != nil {
				assert.Equal(t, table.err, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.want, got)
		})
	}
}

func TestDecodeDoesNotTrustLength(t *testing.T) {
	// A huge pixel count with a tiny stream must fail without allocating
	// the whole count
	_, err := Decode(bytes.NewReader([]byte{1, 0}), 1<<32-1)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
