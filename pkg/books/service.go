package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/librisbooks/libris/pkg/errcodes"
	"github.com/librisbooks/libris/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
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

// CreateBook inserts the book and links it to every author in authorIDs that
// exists, returning the author ids that were found in ascending order. A book
// never exists without an author, so when none of the ids resolve the whole
// operation fails and nothing is persisted.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, authorIDs []int) ([]int, error) {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	var found []int

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model((*models.Author)(nil)).
			Column("a.id").
			Where("a.id IN (?)", bun.In(authorIDs)).
			Order("a.id ASC").
			Scan(ctx, &found)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(found) == 0 {
			return errcodes.NotFound("Authors")
		}

		_, err = tx.NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		edges := make([]*models.AuthorBook, 0, len(found))
		for _, authorID := range found {
			edges = append(edges, &models.AuthorBook{AuthorID: authorID, BookID: book.ID})
		}
		_, err = tx.NewInsert().
			Model(&edges).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Relation("Authors")

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	var books []*models.Book
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Authors").
		Order("b.id ASC")

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

	return books, total, nil
}

// AddAuthors links the book to every author in authorIDs that exists and
// returns the ids that were found, in ascending order. Missing ids are
// skipped; the operation only fails when the book is missing or none of the
// authors resolve.
func (svc *Service) AddAuthors(ctx context.Context, bookID int, authorIDs []int) ([]int, error) {
	var found []int

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("b.id = ?", bookID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Book")
		}

		err = tx.NewSelect().
			Model((*models.Author)(nil)).
			Column("a.id").
			Where("a.id IN (?)", bun.In(authorIDs)).
			Order("a.id ASC").
			Scan(ctx, &found)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(found) == 0 {
			return errcodes.NotFound("Authors")
		}

		edges := make([]*models.AuthorBook, 0, len(found))
		for _, authorID := range found {
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

// SubmitRating records one vote and folds it into the running mean. Both SET
// expressions read the pre-update row, so concurrent submissions serialize on
// the write lock without a read-modify-write race.
func (svc *Service) SubmitRating(ctx context.Context, bookID, rating int) (*models.Book, error) {
	book := &models.Book{}

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Set("count_marks = count_marks + 1").
		Set("rating = (rating * count_marks + ?) / CAST(count_marks + 1 AS REAL)", rating).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", bookID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if rows == 0 {
		return nil, errcodes.NotFound("Book")
	}

	return book, nil
}
