package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rafidhia/storefront/internal/mykafka"
	"github.com/rafidhia/storefront/internal/service"
	"github.com/rafidhia/storefront/internal/util"
)

type ProductHandler struct {
	Products *service.ProductService
	Related  *service.RelatedService
	Producer *mykafka.Producer
}

// GetProducts serves the paginated listing, or the related-products result
// when called with ?action=related (the storefront's product-page contract:
// productId, categoryId, collectionId, limit).
func (h *ProductHandler) GetProducts(c echo.Context) error {
	if c.QueryParam("action") == "related" {
		return h.getRelated(c)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Products.List(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) getRelated(c echo.Context) error {
	productID, err := strconv.ParseUint(c.QueryParam("productId"), 10, 32)
	if err != nil || productID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
	}

	collectionID, err := optionalScopeID(c.QueryParam("collectionId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid collectionId")
	}
	categoryID, err := optionalScopeID(c.QueryParam("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
	}
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	products, err := h.Related.Resolve(c.Request().Context(), uint(productID), collectionID, categoryID, limit)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// optionalScopeID treats absent and the "none"/"all" sentinels as zero,
// which skips the corresponding tier.
func optionalScopeID(raw string) (uint, error) {
	switch raw {
	case "", "none", "all", "0":
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	idParam := c.Param("id")
	if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
		product, err := h.Products.Get(c.Request().Context(), uint(id))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}

	// Non-numeric ids are treated as slugs.
	product, err := h.Products.GetBySlug(c.Request().Context(), idParam)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Products.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Products.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
