package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductCreateDerivesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: "Al-Qur'an Custom!!"})
	require.NoError(t, err)
	require.Equal(t, "al-quran-custom", product.Slug)

	got, err := svc.GetBySlug(ctx, "al-quran-custom")
	require.NoError(t, err)
	require.Equal(t, product.ID, got.ID)
}

func TestProductCreateSlugConflict(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "Sajadah Premium"})
	require.NoError(t, err)

	// Different punctuation, same slug.
	_, err = svc.Create(ctx, ProductInput{Name: "Sajadah  Premium!"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestProductCreateValidation(t *testing.T) {
	svc := &ProductService{DB: newTestDB(t)}

	_, err := svc.Create(context.Background(), ProductInput{Name: ""})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), ProductInput{Name: "!!!"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductCreateUnknownRefs(t *testing.T) {
	svc := &ProductService{DB: newTestDB(t)}

	_, err := svc.Create(context.Background(), ProductInput{Name: "Topi", CategoryID: 42})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), ProductInput{Name: "Topi", CollectionID: 42})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdateRederivesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: "Gelas Kayu"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, product.ID, ProductInput{Name: "Gelas Bambu"})
	require.NoError(t, err)
	require.Equal(t, "gelas-bambu", updated.Slug)

	_, err = svc.GetBySlug(ctx, "gelas-kayu")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductCreateWithVariants(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		Name: "Kaos Sablon",
		Variants: []VariantInput{
			{Label: "S", Price: 90000},
			{Label: "M", Price: 95000},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 2)
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	db := newTestDB(t)
	categories := &CategoryService{DB: db}
	products := &ProductService{DB: db}
	ctx := context.Background()

	category, err := categories.Create(ctx, "Aksesoris")
	require.NoError(t, err)

	product, err := products.Create(ctx, ProductInput{Name: "Gantungan Kunci", CategoryID: category.ID})
	require.NoError(t, err)

	err = categories.Delete(ctx, category.ID)
	require.ErrorIs(t, err, ErrConflict)

	// Still present.
	_, err = categories.Get(ctx, category.ID)
	require.NoError(t, err)

	require.NoError(t, products.Delete(ctx, product.ID))
	require.NoError(t, categories.Delete(ctx, category.ID))
}

func TestCollectionDeleteBlockedByProducts(t *testing.T) {
	db := newTestDB(t)
	collections := &CollectionService{DB: db}
	products := &ProductService{DB: db}
	ctx := context.Background()

	collection, err := collections.Create(ctx, "Ramadhan Sale")
	require.NoError(t, err)

	_, err = products.Create(ctx, ProductInput{Name: "Kurma", CollectionID: collection.ID})
	require.NoError(t, err)

	err = collections.Delete(ctx, collection.ID)
	require.ErrorIs(t, err, ErrConflict)

	got, err := collections.GetBySlug(ctx, "ramadhan-sale")
	require.NoError(t, err)
	require.Equal(t, collection.ID, got.ID)
}

func TestCategoryUpdateSlugCollision(t *testing.T) {
	db := newTestDB(t)
	categories := &CategoryService{DB: db}
	ctx := context.Background()

	_, err := categories.Create(ctx, "Pakaian")
	require.NoError(t, err)
	second, err := categories.Create(ctx, "Sepatu")
	require.NoError(t, err)

	_, err = categories.Update(ctx, second.ID, "Pakaian")
	require.ErrorIs(t, err, ErrConflict)
}

func TestArticleLifecycle(t *testing.T) {
	db := newTestDB(t)
	articles := &ArticleService{DB: db}
	ctx := context.Background()

	article, err := articles.Create(ctx, ArticleInput{Title: "Tips Merawat Sajadah", Body: "..."})
	require.NoError(t, err)
	require.Equal(t, "tips-merawat-sajadah", article.Slug)

	_, err = articles.Create(ctx, ArticleInput{Title: "Tips Merawat Sajadah"})
	require.ErrorIs(t, err, ErrConflict)

	total, items, err := articles.List(ctx, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	require.NoError(t, articles.Delete(ctx, article.ID))
	require.ErrorIs(t, articles.Delete(ctx, article.ID), ErrNotFound)
}

func TestSeoPageUniqueness(t *testing.T) {
	db := newTestDB(t)
	seo := &SeoService{DB: db}
	ctx := context.Background()

	created, err := seo.Create(ctx, SeoInput{Page: "home", Title: "Home"})
	require.NoError(t, err)

	_, err = seo.Create(ctx, SeoInput{Page: "home", Title: "Duplicate"})
	require.ErrorIs(t, err, ErrConflict)

	got, err := seo.GetByPage(ctx, "home")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = seo.Create(ctx, SeoInput{Page: ""})
	require.ErrorIs(t, err, ErrValidation)
}

func TestBannerListFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	banners := &BannerService{DB: db}
	ctx := context.Background()

	_, err := banners.Create(ctx, BannerInput{ImageURL: "https://cdn.example/a.jpg", Position: 2})
	require.NoError(t, err)

	inactive := false
	_, err = banners.Create(ctx, BannerInput{ImageURL: "https://cdn.example/b.jpg", Active: &inactive, Position: 1})
	require.NoError(t, err)

	visible, err := banners.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)

	all, err := banners.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, all[0].Position)
}

func TestFaqOrdering(t *testing.T) {
	db := newTestDB(t)
	faqs := &FaqService{DB: db}
	ctx := context.Background()

	_, err := faqs.Create(ctx, FaqInput{Question: "Kapan dikirim?", Answer: "H+1", Position: 2})
	require.NoError(t, err)
	_, err = faqs.Create(ctx, FaqInput{Question: "Bisa COD?", Answer: "Bisa", Position: 1})
	require.NoError(t, err)

	items, err := faqs.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Bisa COD?", items[0].Question)

	_, err = faqs.Create(ctx, FaqInput{Question: "", Answer: "x"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	ctx := context.Background()

	for _, name := range []string{"Satu", "Dua", "Tiga"} {
		_, err := svc.Create(ctx, ProductInput{Name: name})
		require.NoError(t, err)
	}

	total, items, err := svc.List(ctx, 0, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, items, 2)

	_, rest, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}

func TestProductDeleteNotFound(t *testing.T) {
	svc := &ProductService{DB: newTestDB(t)}
	require.ErrorIs(t, svc.Delete(context.Background(), 123), ErrNotFound)
}

func TestSlugLookupMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := (&ProductService{DB: db}).GetBySlug(ctx, "tidak-ada")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = (&CategoryService{DB: db}).GetBySlug(ctx, "tidak-ada")
	require.ErrorIs(t, err, ErrNotFound)
}
