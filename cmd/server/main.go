package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/config"
	"github.com/haein-dev/c2c-market/internal/database"
	"github.com/haein-dev/c2c-market/internal/handler"
	"github.com/haein-dev/c2c-market/internal/middleware"
	"github.com/haein-dev/c2c-market/internal/queue"
	"github.com/haein-dev/c2c-market/internal/repository"
	"github.com/haein-dev/c2c-market/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: with no client, rate limiting and response
	// caching become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	// Background consumer writing sale records to logs/sales.log.
	go func() {
		if err := queue.StartSalesConsumer(); err != nil {
			log.Printf("sales consumer stopped: %v", err)
		}
	}()

	itemRepo := repository.NewItemRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	userRepo := repository.NewUserRepo(db)
	eventRepo := repository.NewEventRepo(db)
	productRepo := repository.NewProductRepo(db)
	wishlistRepo := repository.NewWishlistRepo(db)
	chatRepo := repository.NewChatRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Item:        handler.NewItemHandler(itemRepo, categoryRepo),
		Transaction: handler.NewTransactionHandler(transactionRepo, reviewRepo),
		Catalog:     handler.NewCatalogHandler(categoryRepo, eventRepo, productRepo),
		User:        handler.NewUserHandler(userRepo, itemRepo, transactionRepo, reviewRepo),
		Wishlist:    handler.NewWishlistHandler(wishlistRepo),
		Chat:        handler.NewChatHandler(chatRepo),
	}, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
