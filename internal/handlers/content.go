package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rafidhia/storefront/internal/service"
	"github.com/rafidhia/storefront/internal/util"
)

type ContentHandler struct {
	Articles *service.ArticleService
	Banners  *service.BannerService
	Faqs     *service.FaqService
	Seo      *service.SeoService
}

func (h *ContentHandler) ListArticles(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Articles.List(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *ContentHandler) GetArticle(c echo.Context) error {
	article, err := h.Articles.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ContentHandler) CreateArticle(c echo.Context) error {
	var req service.ArticleInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	article, err := h.Articles.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, article)
}

func (h *ContentHandler) PatchArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.ArticleInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	article, err := h.Articles.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ContentHandler) DeleteArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Articles.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
	// Public listing only shows active banners; admins pass ?all=true.
	items, err := h.Banners.List(c.Request().Context(), c.QueryParam("all") != "true")
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
	var req service.BannerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	banner, err := h.Banners.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, banner)
}

func (h *ContentHandler) PatchBanner(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.BannerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	banner, err := h.Banners.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, banner)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Banners.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHandler) ListFaqs(c echo.Context) error {
	items, err := h.Faqs.List(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) CreateFaq(c echo.Context) error {
	var req service.FaqInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	faq, err := h.Faqs.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, faq)
}

func (h *ContentHandler) PatchFaq(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.FaqInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	faq, err := h.Faqs.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, faq)
}

func (h *ContentHandler) DeleteFaq(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Faqs.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContentHandler) ListSeo(c echo.Context) error {
	items, err := h.Seo.List(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) GetSeo(c echo.Context) error {
	setting, err := h.Seo.GetByPage(c.Request().Context(), c.Param("page"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *ContentHandler) CreateSeo(c echo.Context) error {
	var req service.SeoInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	setting, err := h.Seo.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, setting)
}

func (h *ContentHandler) PatchSeo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.SeoInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	setting, err := h.Seo.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *ContentHandler) DeleteSeo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Seo.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
