package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rafidhia/storefront/internal/service/search"
	"github.com/rafidhia/storefront/internal/util"
)

type SearchHandler struct {
	ES *search.ES
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.ES.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
