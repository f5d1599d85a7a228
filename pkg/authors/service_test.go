package authors

import (
	"context"
	"database/sql"
	"testing"

	"github.com/librisbooks/libris/pkg/errcodes"
	"github.com/librisbooks/libris/pkg/migrations"
	"github.com/librisbooks/libris/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// A second pool connection would get its own empty in-memory database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*models.AuthorBook)(nil))

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestAuthor(ctx context.Context, t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()

	sername := "Tester"
	author := &models.Author{Name: name, Sername: &sername}
	err := NewService(db).CreateAuthor(ctx, author)
	require.NoError(t, err)
	return author
}

func createTestBook(ctx context.Context, t *testing.T, db *bun.DB, name string, authorIDs ...int) *models.Book {
	t.Helper()

	book := &models.Book{Name: name, Description: "A test book."}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	for _, authorID := range authorIDs {
		_, err = db.NewInsert().
			Model(&models.AuthorBook{AuthorID: authorID, BookID: book.ID}).
			Exec(ctx)
		require.NoError(t, err)
	}
	return book
}

func TestCreateAuthor(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	sername := "Zaitsev"
	author := &models.Author{Name: "Artem", Sername: &sername}
	err := svc.CreateAuthor(ctx, author)
	require.NoError(t, err)

	assert.NotZero(t, author.ID)
	assert.False(t, author.CreatedAt.IsZero())
	assert.Equal(t, author.CreatedAt, author.UpdatedAt)
}

func TestRetrieveAuthor(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := createTestAuthor(ctx, t, db, "Lev")
	book := createTestBook(ctx, t, db, "War and Peace", author.ID)

	found, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
	require.NoError(t, err)
	assert.Equal(t, author.ID, found.ID)
	require.Len(t, found.Books, 1)
	assert.Equal(t, book.ID, found.Books[0].ID)

	missing := author.ID + 100
	_, err = svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &missing})
	assert.True(t, errors.Is(err, errcodes.NotFound("Author")))
}

func TestListAuthorsWithTotal(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third", "Fourth"} {
		createTestAuthor(ctx, t, db, name)
	}

	limit := 2
	offset := 2
	authors, total, err := svc.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Limit:  &limit,
		Offset: &offset,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, authors, 2)
	assert.Equal(t, "Third", authors[0].Name)
	assert.Equal(t, "Fourth", authors[1].Name)
}

func TestAddBooks(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := createTestAuthor(ctx, t, db, "Linker")
	other := createTestAuthor(ctx, t, db, "Owner")
	b1 := createTestBook(ctx, t, db, "One", other.ID)
	b2 := createTestBook(ctx, t, db, "Two", other.ID)

	t.Run("links only the books that exist and reports them", func(tt *testing.T) {
		found, err := svc.AddBooks(ctx, author.ID, []int{b1.ID, b2.ID, 999})
		require.NoError(tt, err)
		assert.Equal(tt, []int{b1.ID, b2.ID}, found)

		linked, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
		require.NoError(tt, err)
		assert.Len(tt, linked.Books, 2)
	})

	t.Run("is idempotent for already-linked books", func(tt *testing.T) {
		found, err := svc.AddBooks(ctx, author.ID, []int{b1.ID})
		require.NoError(tt, err)
		assert.Equal(tt, []int{b1.ID}, found)

		count, err := db.NewSelect().
			Model((*models.AuthorBook)(nil)).
			Where("ab.author_id = ?", author.ID).
			Count(ctx)
		require.NoError(tt, err)
		assert.Equal(tt, 2, count)
	})

	t.Run("fails when no book resolves", func(tt *testing.T) {
		_, err := svc.AddBooks(ctx, author.ID, []int{997, 998, 999})
		assert.True(tt, errors.Is(err, errcodes.NotFound("Books")))
	})

	t.Run("fails when the author is missing", func(tt *testing.T) {
		_, err := svc.AddBooks(ctx, 999, []int{b1.ID})
		assert.True(tt, errors.Is(err, errcodes.NotFound("Author")))
	})
}

func TestRemoveBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	a1 := createTestAuthor(ctx, t, db, "Primary")
	a2 := createTestAuthor(ctx, t, db, "Secondary")
	shared := createTestBook(ctx, t, db, "Shared", a1.ID, a2.ID)
	solo := createTestBook(ctx, t, db, "Solo", a1.ID)

	t.Run("removes the edge when the book keeps another author", func(tt *testing.T) {
		err := svc.RemoveBook(ctx, a2.ID, shared.ID)
		require.NoError(tt, err)

		count, err := db.NewSelect().
			Model((*models.AuthorBook)(nil)).
			Where("ab.book_id = ?", shared.ID).
			Count(ctx)
		require.NoError(tt, err)
		assert.Equal(tt, 1, count)
	})

	t.Run("rejects unlinking the sole author", func(tt *testing.T) {
		err := svc.RemoveBook(ctx, a1.ID, solo.ID)
		assert.True(tt, errors.Is(err, errcodes.LastAuthor()))

		count, err := db.NewSelect().
			Model((*models.AuthorBook)(nil)).
			Where("ab.book_id = ?", solo.ID).
			Count(ctx)
		require.NoError(tt, err)
		assert.Equal(tt, 1, count)
	})

	t.Run("rejects unlinking a pair with no edge", func(tt *testing.T) {
		err := svc.RemoveBook(ctx, a2.ID, solo.ID)
		assert.True(tt, errors.Is(err, errcodes.RelationNotFound()))
	})

	t.Run("fails when either id is missing", func(tt *testing.T) {
		err := svc.RemoveBook(ctx, 999, solo.ID)
		assert.True(tt, errors.Is(err, errcodes.NotFound("Author")))

		err = svc.RemoveBook(ctx, a1.ID, 999)
		assert.True(tt, errors.Is(err, errcodes.NotFound("Book")))
	})
}
