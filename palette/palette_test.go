package palette

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	b = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	c = color.NRGBA{0x00, 0x00, 0xff, 0x80}
)

func distinct(n int) []color.NRGBA {
	pix := make([]color.NRGBA, n)
	for i := range pix {
		pix[i] = color.NRGBA{uint8(i), uint8(i >> 8), 0x00, 0xff}
	}
	return pix
}

func TestBuild(t *testing.T) {
	tables := []struct {
		name string
		pix  []color.NRGBA
		want []color.NRGBA
	}{
		{"empty", nil, []color.NRGBA{}},
		{"single", []color.NRGBA{a, a, a}, []color.NRGBA{a}},
		{"first occurrence", []color.NRGBA{c, a, c, b, a}, []color.NRGBA{c, a, b}},
		// Alpha is part of the identity of a color
		{"alpha", []color.NRGBA{a, {0xff, 0x00, 0x00, 0xfe}}, []color.NRGBA{a, {0xff, 0x00, 0x00, 0xfe}}},
		{"maximum", distinct(MaxColors), distinct(MaxColors)},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			p, err := Build(table.pix)
			require.NoError(t, err)
			assert.Equal(t, len(table.want), p.Len())
			assert.Equal(t, table.want, append([]color.NRGBA{}, p.Colors()...))

			for _, px := range table.pix {
				i, ok := p.Index(px)
				require.True(t, ok)
				assert.Equal(t, px, p.Color(i))
			}
		})
	}
}

func TestBuildTooManyColors(t *testing.T) {
	for _, n := range []int{MaxColors + 1, 300} {
		p, err := Build(distinct(n))
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrTooManyColors))
	}
}

func TestNew(t *testing.T) {
	p, err := New([]color.NRGBA{b, a})
	require.NoError(t, err)

	i, ok := p.Index(a)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), i)

	_, ok = p.Index(c)
	assert.False(t, ok)

	assert.Equal(t, color.Palette{b, a}, p.Model())

	_, err = New([]color.NRGBA{a, b, a})
	assert.Equal(t, errDuplicate, err)

	_, err = New(distinct(MaxColors + 1))
	assert.True(t, errors.Is(err, ErrTooManyColors))
}

func TestColorsIsCopy(t *testing.T) {
	p, err := Build([]color.NRGBA{a, b})
	require.NoError(t, err)

	colors := p.Colors()
	colors[0] = c

	assert.Equal(t, a, p.Color(0))
}
