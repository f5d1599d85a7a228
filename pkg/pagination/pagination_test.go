package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestParsePerPage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, ParsePerPage("", 3))
	assert.Equal(t, 3, ParsePerPage("abc", 3))
	assert.Equal(t, 3, ParsePerPage("0", 3))
	assert.Equal(t, 3, ParsePerPage("-1", 3))
	assert.Equal(t, 10, ParsePerPage("10", 3))
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("middle page", func(t *testing.T) {
		p := Paginate(2, 3, 10)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 4, p.Pages)
		assert.Equal(t, 3, *p.NextNum)
		assert.Equal(t, 1, *p.PrevNum)
	})

	t.Run("first page", func(t *testing.T) {
		p := Paginate(1, 3, 10)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
		assert.Nil(t, p.PrevNum)
	})

	t.Run("last page", func(t *testing.T) {
		p := Paginate(4, 3, 10)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Nil(t, p.NextNum)
		assert.Equal(t, 3, *p.PrevNum)
	})

	t.Run("beyond the last page", func(t *testing.T) {
		p := Paginate(9, 3, 10)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 4, p.Pages)
	})

	t.Run("no items", func(t *testing.T) {
		p := Paginate(1, 3, 0)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
		assert.Equal(t, 0, p.Pages)
	})
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Offset(1, 3))
	assert.Equal(t, 3, Offset(2, 3))
	assert.Equal(t, 27, Offset(10, 3))
}
