package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rafidhia/storefront/internal/service"
)

type CategoryHandler struct {
	Categories *service.CategoryService
}

func (h *CategoryHandler) List(c echo.Context) error {
	items, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	idParam := c.Param("id")
	if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
		category, err := h.Categories.Get(c.Request().Context(), uint(id))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, category)
	}

	category, err := h.Categories.GetBySlug(c.Request().Context(), idParam)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Categories.Create(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Categories.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type CollectionHandler struct {
	Collections *service.CollectionService
}

func (h *CollectionHandler) List(c echo.Context) error {
	items, err := h.Collections.List(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CollectionHandler) Get(c echo.Context) error {
	idParam := c.Param("id")
	if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
		collection, err := h.Collections.Get(c.Request().Context(), uint(id))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, collection)
	}

	collection, err := h.Collections.GetBySlug(c.Request().Context(), idParam)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	collection, err := h.Collections.Create(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, collection)
}

func (h *CollectionHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	collection, err := h.Collections.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Collections.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
