package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `bun:",nullzero" json:"name"`
	Description string    `bun:",nullzero" json:"description"`
	Rating      float64   `json:"rating"`
	CountMarks  int       `json:"count_marks"`
	Authors     []*Author `bun:"m2m:author_books,join:Book=Author" json:"authors,omitempty"`
}
