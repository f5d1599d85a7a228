package models

import (
	"github.com/uptrace/bun"
)

// AuthorBook is the join row linking authors and books. It's registered as
// the m2m model with bun so relations on Author and Book resolve through it.
type AuthorBook struct {
	bun.BaseModel `bun:"table:author_books,alias:ab"`

	AuthorID int     `bun:",pk" json:"author_id"`
	Author   *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	BookID   int     `bun:",pk" json:"book_id"`
	Book     *Book   `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}
