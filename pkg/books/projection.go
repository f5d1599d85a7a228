package books

import "github.com/librisbooks/libris/pkg/models"

type AuthorSummary struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Sername *string `json:"sername"`
}

// BookView is the read shape of a book. Authors are listed in storage order,
// without truncation.
type BookView struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	CountMarks  int             `json:"count_marks"`
	Authors     []AuthorSummary `json:"authors"`
}

func NewBookView(book *models.Book) *BookView {
	authors := make([]AuthorSummary, 0, len(book.Authors))
	for _, a := range book.Authors {
		authors = append(authors, AuthorSummary{
			ID:      a.ID,
			Name:    a.Name,
			Sername: a.Sername,
		})
	}

	return &BookView{
		ID:          book.ID,
		Name:        book.Name,
		Description: book.Description,
		Rating:      book.Rating,
		CountMarks:  book.CountMarks,
		Authors:     authors,
	}
}

func NewBookViews(books []*models.Book) []*BookView {
	views := make([]*BookView, 0, len(books))
	for _, b := range books {
		views = append(views, NewBookView(b))
	}
	return views
}
