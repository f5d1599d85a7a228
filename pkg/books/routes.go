package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers book routes on a pre-configured group.
func RegisterRoutes(g *echo.Group, db *bun.DB, pageSize int) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
		pageSize:    pageSize,
	}

	g.GET("", h.index)
	g.POST("", h.create)
	g.PUT("", h.addAuthors)
	g.PATCH("", h.rate)
}
