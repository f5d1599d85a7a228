package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers author routes on a pre-configured group.
func RegisterRoutes(g *echo.Group, db *bun.DB, pageSize int) {
	authorService := NewService(db)

	h := &handler{
		authorService: authorService,
		pageSize:      pageSize,
	}

	g.GET("", h.index)
	g.POST("", h.create)
	g.PUT("", h.addBooks)
	g.PATCH("", h.removeBook)
}
