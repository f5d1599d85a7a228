package authors

import (
	"testing"

	"github.com/librisbooks/libris/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthorView(t *testing.T) {
	t.Parallel()

	t.Run("keeps only the five best-rated books, sorted descending", func(tt *testing.T) {
		author := &models.Author{ID: 1, Name: "Prolific"}
		for i, rating := range []float64{2.5, 4.8, 1.0, 3.3, 5.0, 0.0, 4.1} {
			author.Books = append(author.Books, &models.Book{ID: i + 1, Name: "Book", Rating: rating})
		}

		view := NewAuthorView(author)
		require.Len(tt, view.Books, 5)

		ratings := make([]float64, 0, len(view.Books))
		for _, b := range view.Books {
			ratings = append(ratings, b.Rating)
		}
		assert.Equal(tt, []float64{5.0, 4.8, 4.1, 3.3, 2.5}, ratings)
	})

	t.Run("an author without books gets an empty list, not null", func(tt *testing.T) {
		view := NewAuthorView(&models.Author{ID: 2, Name: "New"})
		assert.NotNil(tt, view.Books)
		assert.Empty(tt, view.Books)
	})

	t.Run("ties keep storage order", func(tt *testing.T) {
		author := &models.Author{ID: 3, Name: "Tied"}
		for i := 1; i <= 3; i++ {
			author.Books = append(author.Books, &models.Book{ID: i, Rating: 4.0})
		}

		view := NewAuthorView(author)
		require.Len(tt, view.Books, 3)
		assert.Equal(tt, 1, view.Books[0].ID)
		assert.Equal(tt, 2, view.Books[1].ID)
		assert.Equal(tt, 3, view.Books[2].ID)
	})
}
