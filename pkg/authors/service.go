package authors

import (
	"context"
	"database/sql"
	"time"

	"github.com/librisbooks/libris/pkg/errcodes"
	"github.com/librisbooks/libris/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveAuthorOptions struct {
	ID *int
}

type ListAuthorsOptions struct {
	Limit  *int
	Offset *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	author := &models.Author{}

	q := svc.db.
		NewSelect().
		Model(author).
		Relation("Books")

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

func (svc *Service) ListAuthors(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, error) {
	a, _, err := svc.listAuthorsWithTotal(ctx, opts)
	return a, errors.WithStack(err)
}

func (svc *Service) ListAuthorsWithTotal(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, int, error) {
	opts.includeTotal = true
	return svc.listAuthorsWithTotal(ctx, opts)
}

func (svc *Service) listAuthorsWithTotal(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, int, error) {
	var authors []*models.Author
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&authors).
		Relation("Books").
		Order("a.id ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return authors, total, nil
}

// AddBooks links the author to every book in bookIDs that exists and returns
// the ids that were found, in ascending order. Missing ids are skipped; the
// operation only fails when the author is missing or none of the books
// resolve. Already-linked books are left as is.
func (svc *Service) AddBooks(ctx context.Context, authorID int, bookIDs []int) ([]int, error) {
	var found []int

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Author)(nil)).
			Where("a.id = ?", authorID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Author")
		}

		err = tx.NewSelect().
			Model((*models.Book)(nil)).
			Column("b.id").
			Where("b.id IN (?)", bun.In(bookIDs)).
			Order("b.id ASC").
			Scan(ctx, &found)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(found) == 0 {
			return errcodes.NotFound("Books")
		}

		edges := make([]*models.AuthorBook, 0, len(found))
		for _, bookID := range found {
			edges = append(edges, &models.AuthorBook{AuthorID: authorID, BookID: bookID})
		}
		_, err = tx.NewInsert().
			Model(&edges).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// RemoveBook unlinks one book from the author. A book always keeps at least
// one author, so unlinking its sole author is rejected and nothing changes.
func (svc *Service) RemoveBook(ctx context.Context, authorID, bookID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Author)(nil)).
			Where("a.id = ?", authorID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Author")
		}

		exists, err = tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("b.id = ?", bookID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Book")
		}

		exists, err = tx.NewSelect().
			Model((*models.AuthorBook)(nil)).
			Where("ab.author_id = ? AND ab.book_id = ?", authorID, bookID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.RelationNotFound()
		}

		count, err := tx.NewSelect().
			Model((*models.AuthorBook)(nil)).
			Where("ab.book_id = ?", bookID).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count <= 1 {
			return errcodes.LastAuthor()
		}

		_, err = tx.NewDelete().
			Model((*models.AuthorBook)(nil)).
			Where("author_id = ? AND book_id = ?", authorID, bookID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}
