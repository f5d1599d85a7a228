package books

type BookFields struct {
	Name        string `json:"name" mod:"trim" validate:"required"`
	Description string `json:"description" mod:"trim" validate:"required"`
}

type CreateBookPayload struct {
	Book      BookFields `json:"book" validate:"required"`
	AuthorIDs []int      `json:"author_id" validate:"required,min=1"`
}

type AddAuthorsPayload struct {
	ID        int   `json:"id" validate:"required_without=BookID"`
	BookID    int   `json:"book_id" validate:"required_without=ID"`
	AuthorIDs []int `json:"author_id" validate:"required,min=1"`
}

type RatePayload struct {
	BookID int `json:"book_id" validate:"required,min=1"`
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}
