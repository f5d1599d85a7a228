package authors

type CreateAuthorPayload struct {
	Name    string  `json:"name" mod:"trim" validate:"required"`
	Sername *string `json:"sername" mod:"trim" validate:"required"`
}

type AddBooksPayload struct {
	AuthorID int   `json:"author_id" validate:"required,min=1"`
	BookIDs  []int `json:"book_id" validate:"required,min=1"`
}

type RemoveBookPayload struct {
	AuthorID int `json:"author_id" validate:"required,min=1"`
	BookID   int `json:"book_id" validate:"required,min=1"`
}
