package authors

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
	authorService *Service
	pageSize      int
}

// index serves both single-author lookups (?id=) and the paged listing. A
// non-numeric id falls through to the listing, matching the query dispatch
// of the write API's consumers.
func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	if rawID := c.QueryParam("id"); isDigits(rawID) {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return errcodes.NotFound("Author")
		}

		author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{
			ID: &id,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(c.JSON(http.StatusOK, NewAuthorView(author)))
	}

	page := pagination.ParsePage(c.QueryParam("page"))
	perPage := pagination.ParsePerPage(c.QueryParam("pagin"), h.pageSize)
	offset := pagination.Offset(page, perPage)

	authors, total, err := h.authorService.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Limit:  &perPage,
		Offset: &offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"authors":    NewAuthorViews(authors),
		"pagination": pagination.Paginate(page, perPage, total),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	author := &models.Author{
		Name:    params.Name,
		Sername: params.Sername,
	}
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return payload.OK(c, fmt.Sprintf("Author %s was created.", author.Name))
}

func (h *handler) addBooks(c echo.Context) error {
	ctx := c.Request().Context()

	params := AddBooksPayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	found, err := h.authorService.AddBooks(ctx, params.AuthorID, params.BookIDs)
	switch {
	case errors.Is(err, errcodes.NotFound("Author")):
		return payload.Fail(c, fmt.Sprintf("No author found with id=%d", params.AuthorID))
	case errors.Is(err, errcodes.NotFound("Books")):
		return payload.Fail(c, fmt.Sprintf("Noone books found with id: %s.", joinIDs(params.BookIDs)))
	case err != nil:
		return errors.WithStack(err)
	}

	return payload.OK(c, fmt.Sprintf("Books was found with id: %s.", joinIDs(found)))
}

func (h *handler) removeBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := RemoveBookPayload{}
	if err := c.Bind(&params); err != nil {
		return payload.Validation(c, err)
	}

	err := h.authorService.RemoveBook(ctx, params.AuthorID, params.BookID)
	switch {
	case errors.Is(err, errcodes.NotFound("Author")):
		return payload.Fail(c, fmt.Sprintf("No author found with id=%d", params.AuthorID))
	case errors.Is(err, errcodes.NotFound("Book")):
		return payload.Fail(c, fmt.Sprintf("No book found with id=%d", params.BookID))
	case errors.Is(err, errcodes.RelationNotFound()):
		return payload.Fail(c, "Author is not linked to this book.")
	case errors.Is(err, errcodes.LastAuthor()):
		return payload.Fail(c, "Book must have at least one author.")
	case err != nil:
		return errors.WithStack(err)
	}

	return payload.OK(c, fmt.Sprintf("Book %d was unlinked from author %d.", params.BookID, params.AuthorID))
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
