package util

import "github.com/gofiber/fiber/v2"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageQuery reads ?page= and ?page_size= with sane bounds.
func PageQuery(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
