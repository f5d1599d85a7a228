package books

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/librisbooks/libris/pkg/errcodes"
	"github.com/librisbooks/libris/pkg/models"
	"github.com/librisbooks/libris/pkg/pagination"
	"github.com/librisbooks/libris/pkg/payload"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
	pageSize    int
}

// index serves both single-book lookups (?id=) and the paged listing. A
// non-numeric id falls through to the listing.
func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	if rawID := c.QueryParam("id"); isDigits(rawID) {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return errcodes.NotFound("Book")
		}

		book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
			ID: &id,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(c.JSON(http.StatusOK, NewBookView(book)))
	}

	page := pagination.ParsePage(c.QueryParam("page"))
	perPage := pagination.ParsePerPage(c.QueryParam("pagin"), h.pageSize)
	offset := pagination.Offset(page, perPage)

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  &perPage,
		Offset: &offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"books":      NewBookViews(books),
		"pagination": pagination.Paginate(page, perPage, total),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	book := &models.Book{
		Name:        params.Book.Name,
		Description: params.Book.Description,
	}
	found, err := h.bookService.CreateBook(ctx, book, params.AuthorIDs)
	switch {
	case errors.Is(err, errcodes.NotFound("Authors")):
		return payload.Fail(c, fmt.Sprintf("Noone authors found with id: %s.", joinIDs(params.AuthorIDs)))
	case err != nil:
		return errors.WithStack(err)
	}

	return payload.OK(c, fmt.Sprintf("Found authors: %s.", joinIDs(found)))
}

func (h *handler) addAuthors(c echo.Context) error {
	ctx := c.Request().Context()

	params := AddAuthorsPayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	bookID := params.BookID
	if bookID == 0 {
		bookID = params.ID
	}

	found, err := h.bookService.AddAuthors(ctx, bookID, params.AuthorIDs)
	switch {
	case errors.Is(err, errcodes.NotFound("Book")):
		return payload.Fail(c, fmt.Sprintf("No book found with id=%d", bookID))
	case errors.Is(err, errcodes.NotFound("Authors")):
		return payload.Fail(c, fmt.Sprintf("Noone authors found with id: %s.", joinIDs(params.AuthorIDs)))
	case err != nil:
		return errors.WithStack(err)
	}

	return payload.OK(c, fmt.Sprintf("Found authors: %s.", joinIDs(found)))
}

type ratingResponse struct {
	payload.Response
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
}

func (h *handler) rate(c echo.Context) error {
	ctx := c.Request().Context()

	params := RatePayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	book, err := h.bookService.SubmitRating(ctx, params.BookID, params.Rating)
	switch {
	case errors.Is(err, errcodes.NotFound("Book")):
		return payload.Fail(c, fmt.Sprintf("No book found with id=%d", params.BookID))
	case err != nil:
		return errors.WithStack(err)
	}

	response := ratingResponse{
		Response: payload.Response{
			Success: true,
			Message: fmt.Sprintf("New rating %g for %d votes.", book.Rating, book.CountMarks),
		},
		Rating: book.Rating,
		Votes:  book.CountMarks,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func joinIDs(ids []int) string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.Itoa(id))
	}
	return strings.Join(strs, ", ")
}
