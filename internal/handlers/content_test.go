package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rafidhia/storefront/internal/models"
	"github.com/rafidhia/storefront/internal/service"
)

func TestCategoryDeleteConflict(t *testing.T) {
	db := newTestDB(t)
	h := &CategoryHandler{Categories: &service.CategoryService{DB: db}}
	products := &service.ProductService{DB: db}
	e := echo.New()
	ctx := context.Background()

	category, err := h.Categories.Create(ctx, "Aksesoris")
	require.NoError(t, err)
	_, err = products.Create(ctx, service.ProductInput{Name: "Gantungan Kunci", CategoryID: category.ID})
	require.NoError(t, err)

	c, _ := newJSONContext(e, http.MethodDelete, "/api/admin/categories/1", "", "id", fmt.Sprint(category.ID))
	requireHTTPStatus(t, h.Delete(c), http.StatusConflict)
}

func TestCategoryGetByIDOrSlug(t *testing.T) {
	db := newTestDB(t)
	h := &CategoryHandler{Categories: &service.CategoryService{DB: db}}
	e := echo.New()

	category, err := h.Categories.Create(context.Background(), "Pakaian Muslim")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodGet, "/api/categories/1", "", "id", fmt.Sprint(category.ID))
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(e, http.MethodGet, "/api/categories/pakaian-muslim", "", "id", "pakaian-muslim")
	require.NoError(t, h.Get(c))

	var got models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, category.ID, got.ID)
}

func TestCollectionCreateConflict(t *testing.T) {
	db := newTestDB(t)
	h := &CollectionHandler{Collections: &service.CollectionService{DB: db}}
	e := echo.New()

	c, rec := newJSONContext(e, http.MethodPost, "/api/admin/collections", `{"name":"Ramadhan Sale"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, _ = newJSONContext(e, http.MethodPost, "/api/admin/collections", `{"name":"Ramadhan  Sale!"}`)
	requireHTTPStatus(t, h.Create(c), http.StatusConflict)
}

func newContentHandler(t *testing.T) *ContentHandler {
	t.Helper()
	db := newTestDB(t)
	return &ContentHandler{
		Articles: &service.ArticleService{DB: db},
		Banners:  &service.BannerService{DB: db},
		Faqs:     &service.FaqService{DB: db},
		Seo:      &service.SeoService{DB: db},
	}
}

func TestArticleHandlers(t *testing.T) {
	h := newContentHandler(t)
	e := echo.New()

	c, rec := newJSONContext(e, http.MethodPost, "/api/admin/articles",
		`{"title":"Tips Merawat Sajadah","body":"..."}`)
	require.NoError(t, h.CreateArticle(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(e, http.MethodGet, "/api/articles/tips-merawat-sajadah", "",
		"slug", "tips-merawat-sajadah")
	require.NoError(t, h.GetArticle(c))

	var article models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	require.Equal(t, "Tips Merawat Sajadah", article.Title)

	c, _ = newJSONContext(e, http.MethodGet, "/api/articles/tidak-ada", "", "slug", "tidak-ada")
	requireHTTPStatus(t, h.GetArticle(c), http.StatusNotFound)
}

func TestBannerListingVisibility(t *testing.T) {
	h := newContentHandler(t)
	e := echo.New()

	c, _ := newJSONContext(e, http.MethodPost, "/api/admin/banners",
		`{"image_url":"https://cdn.example/a.jpg","position":1}`)
	require.NoError(t, h.CreateBanner(c))

	c, _ = newJSONContext(e, http.MethodPost, "/api/admin/banners",
		`{"image_url":"https://cdn.example/b.jpg","active":false,"position":2}`)
	require.NoError(t, h.CreateBanner(c))

	c, rec := newJSONContext(e, http.MethodGet, "/api/banners", "")
	require.NoError(t, h.ListBanners(c))
	var visible []models.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Len(t, visible, 1)

	c, rec = newJSONContext(e, http.MethodGet, "/api/banners?all=true", "")
	require.NoError(t, h.ListBanners(c))
	var all []models.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
}

func TestSeoHandlers(t *testing.T) {
	h := newContentHandler(t)
	e := echo.New()

	c, rec := newJSONContext(e, http.MethodPost, "/api/admin/seo", `{"page":"home","title":"Home"}`)
	require.NoError(t, h.CreateSeo(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, _ = newJSONContext(e, http.MethodPost, "/api/admin/seo", `{"page":"home","title":"Dup"}`)
	requireHTTPStatus(t, h.CreateSeo(c), http.StatusConflict)

	c, rec = newJSONContext(e, http.MethodGet, "/api/seo/home", "", "page", "home")
	require.NoError(t, h.GetSeo(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, _ = newJSONContext(e, http.MethodGet, "/api/seo/about", "", "page", "about")
	requireHTTPStatus(t, h.GetSeo(c), http.StatusNotFound)
}

func TestFaqHandlers(t *testing.T) {
	h := newContentHandler(t)
	e := echo.New()

	c, _ := newJSONContext(e, http.MethodPost, "/api/admin/faqs",
		`{"question":"Bisa COD?","answer":"Bisa","position":1}`)
	require.NoError(t, h.CreateFaq(c))

	c, _ = newJSONContext(e, http.MethodPost, "/api/admin/faqs", `{"question":"","answer":"x"}`)
	requireHTTPStatus(t, h.CreateFaq(c), http.StatusBadRequest)

	c, rec := newJSONContext(e, http.MethodGet, "/api/faqs", "")
	require.NoError(t, h.ListFaqs(c))
	var items []models.Faq
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
}
