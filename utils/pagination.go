package utils

import "github.com/gofiber/fiber/v2"

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Pagination holds the normalized page window for list endpoints.
type Pagination struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// GetPagination reads page/perPage from the query string and clamps them to
// sane bounds.
func GetPagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("perPage", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// PagedData builds the standard list payload.
func PagedData(p Pagination, total int64, data interface{}) fiber.Map {
	return fiber.Map{
		"data":    data,
		"total":   total,
		"page":    p.Page,
		"perPage": p.PerPage,
	}
}
