package metar

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestData(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		d := Known(1017)
		v, ok := d.Get()
		assert.True(t, ok)
		assert.True(t, d.IsKnown())
		assert.False(t, d.IsUnknown())
		assert.Equal(t, 1017, v)
		assert.Equal(t, 1017, *d.Ptr())
		assert.Equal(t, 1017, d.OrElse(0))
		assert.Equal(t, 1017, d.MustGet())
	})

	t.Run("unknown", func(t *testing.T) {
		d := Unknown[int]()
		_, ok := d.Get()
		assert.False(t, ok)
		assert.True(t, d.IsUnknown())
		assert.Nil(t, d.Ptr())
		assert.Equal(t, 42, d.OrElse(42))
	})

	t.Run("zero value is unknown", func(t *testing.T) {
		var d Data[string]
		assert.True(t, d.IsUnknown())
	})

	t.Run("MustGet panics on unknown", func(t *testing.T) {
		assert.PanicsWithValue(t, "metar: MustGet called on unknown int", func() {
			Unknown[int]().MustGet()
		})
	})

	t.Run("Ptr returns a copy", func(t *testing.T) {
		d := Known(5)
		p := d.Ptr()
		*p = 6
		assert.Equal(t, 5, d.MustGet())
	})
}

func TestMapData(t *testing.T) {
	assert.Equal(t, Known("12"), MapData(Known(12), strconv.Itoa))
	assert.Equal(t, Unknown[string](), MapData(Unknown[int](), strconv.Itoa))
}

func TestRenderPlaceholderWidth(t *testing.T) {
	for width := 1; width <= 12; width++ {
		s := render(Unknown[int](), width, strconv.Itoa)
		assert.Len(t, s, width)
		for _, c := range s {
			assert.Equal(t, '/', c)
		}
	}
}
