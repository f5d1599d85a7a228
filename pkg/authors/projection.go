package authors

import (
	"sort"

	"github.com/librisbooks/libris/pkg/models"
)

// maxProjectedBooks caps how many books an author response carries. Storage
// keeps every edge; only the projection is truncated.
const maxProjectedBooks = 5

type BookSummary struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// AuthorView is the read shape of an author. Books holds the author's top
// rated books, sorted rating-descending, at most maxProjectedBooks of them.
type AuthorView struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Sername *string       `json:"sername"`
	Books   []BookSummary `json:"books"`
}

func NewAuthorView(author *models.Author) *AuthorView {
	books := make([]BookSummary, 0, len(author.Books))
	for _, b := range author.Books {
		books = append(books, BookSummary{
			ID:     b.ID,
			Name:   b.Name,
			Rating: b.Rating,
		})
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Rating > books[j].Rating
	})
	if len(books) > maxProjectedBooks {
		books = books[:maxProjectedBooks]
	}

	return &AuthorView{
		ID:      author.ID,
		Name:    author.Name,
		Sername: author.Sername,
		Books:   books,
	}
}

func NewAuthorViews(authors []*models.Author) []*AuthorView {
	views := make([]*AuthorView, 0, len(authors))
	for _, a := range authors {
		views = append(views, NewAuthorView(a))
	}
	return views
}
