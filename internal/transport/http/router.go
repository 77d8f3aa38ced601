package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/handlers"
	"github.com/rafidhia/storefront/internal/service"
)

type Deps struct {
	DB                *gorm.DB
	AuthHandler       *handlers.AuthHandler
	ProductHandler    *handlers.ProductHandler
	CartHandler       *handlers.CartHandler
	CategoryHandler   *handlers.CategoryHandler
	CollectionHandler *handlers.CollectionHandler
	ContentHandler    *handlers.ContentHandler
	SearchHandler     *handlers.SearchHandler
	Tokens            *service.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.LogOut)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/categories", d.CategoryHandler.List)
	api.GET("/categories/:id", d.CategoryHandler.Get)
	api.GET("/collections", d.CollectionHandler.List)
	api.GET("/collections/:id", d.CollectionHandler.Get)
	api.GET("/articles", d.ContentHandler.ListArticles)
	api.GET("/articles/:slug", d.ContentHandler.GetArticle)
	api.GET("/banners", d.ContentHandler.ListBanners)
	api.GET("/faqs", d.ContentHandler.ListFaqs)
	api.GET("/seo/:page", d.ContentHandler.GetSeo)
	api.GET("/search", d.SearchHandler.Search)

	cart := api.Group("/cart", d.Tokens.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/:id", d.CartHandler.DeleteCartItem)

	admin := api.Group("/admin", d.Tokens.AdminOnly)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.Create)
	admin.PATCH("/categories/:id", d.CategoryHandler.Patch)
	admin.DELETE("/categories/:id", d.CategoryHandler.Delete)

	admin.POST("/collections", d.CollectionHandler.Create)
	admin.PATCH("/collections/:id", d.CollectionHandler.Patch)
	admin.DELETE("/collections/:id", d.CollectionHandler.Delete)

	admin.POST("/articles", d.ContentHandler.CreateArticle)
	admin.PATCH("/articles/:id", d.ContentHandler.PatchArticle)
	admin.DELETE("/articles/:id", d.ContentHandler.DeleteArticle)

	admin.POST("/banners", d.ContentHandler.CreateBanner)
	admin.PATCH("/banners/:id", d.ContentHandler.PatchBanner)
	admin.DELETE("/banners/:id", d.ContentHandler.DeleteBanner)

	admin.POST("/faqs", d.ContentHandler.CreateFaq)
	admin.PATCH("/faqs/:id", d.ContentHandler.PatchFaq)
	admin.DELETE("/faqs/:id", d.ContentHandler.DeleteFaq)

	admin.GET("/seo", d.ContentHandler.ListSeo)
	admin.POST("/seo", d.ContentHandler.CreateSeo)
	admin.PATCH("/seo/:id", d.ContentHandler.PatchSeo)
	admin.DELETE("/seo/:id", d.ContentHandler.DeleteSeo)
}
