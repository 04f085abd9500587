package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/jammission/backend/internal/es"
	"github.com/jammission/backend/internal/service/search"
	"github.com/jammission/backend/internal/util"
	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	ES *elasticsearch.Client
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "missing query")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, es.ProductIndex, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":    total,
		"products": products,
	})
}
