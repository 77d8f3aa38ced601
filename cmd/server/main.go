package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/rafidhia/storefront/internal/cache"
	"github.com/rafidhia/storefront/internal/config"
	"github.com/rafidhia/storefront/internal/es"
	"github.com/rafidhia/storefront/internal/handlers"
	"github.com/rafidhia/storefront/internal/logging"
	"github.com/rafidhia/storefront/internal/mykafka"
	"github.com/rafidhia/storefront/internal/service"
	"github.com/rafidhia/storefront/internal/service/search"
	httpserver "github.com/rafidhia/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var redisClient *redis.Client
	if configuration.REDIS_ADDR != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: configuration.REDIS_ADDR})
	}
	relatedCache := cache.NewRelatedCache(redisClient)

	var searchES *search.ES
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		searchES = &search.ES{Client: esClient, Index: "product"}
	}

	tokens := &service.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	products := &service.ProductService{DB: db, Index: searchES, Cache: relatedCache}
	related := &service.RelatedService{DB: db, Cache: relatedCache, DefaultLimit: configuration.RELATED_LIMIT}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:                db,
		AuthHandler:       &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: producer},
		ProductHandler:    &handlers.ProductHandler{Products: products, Related: related, Producer: producer},
		CartHandler:       &handlers.CartHandler{Cart: &service.CartService{DB: db}, Producer: producer},
		CategoryHandler:   &handlers.CategoryHandler{Categories: &service.CategoryService{DB: db}},
		CollectionHandler: &handlers.CollectionHandler{Collections: &service.CollectionService{DB: db}},
		ContentHandler: &handlers.ContentHandler{
			Articles: &service.ArticleService{DB: db},
			Banners:  &service.BannerService{DB: db},
			Faqs:     &service.FaqService{DB: db},
			Seo:      &service.SeoService{DB: db},
		},
		SearchHandler: &handlers.SearchHandler{ES: searchES},
		Tokens:        tokens,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
