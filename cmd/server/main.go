package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"concert-tickets/internal/config"
	"concert-tickets/internal/database"
	"concert-tickets/internal/handler"
	"concert-tickets/internal/queue"
	"concert-tickets/internal/repository"
	"concert-tickets/internal/router"
	"concert-tickets/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	if err := database.SeedConcerts(ctx, db); err != nil {
		cancel()
		log.Fatalf("seed concerts: %v", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed admin: %v", err)
	}
	cancel()

	// nil when Redis is unreachable; cache and limiter become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache and rate limiter disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	concerts := repository.NewConcertRepo(db)
	offers := repository.NewTicketOfferRepo(db)
	orders := repository.NewOrderRepo(db)

	concertSvc := service.NewConcertService(concerts)
	offerSvc := service.NewTicketOfferService(offers)
	orderSvc := service.NewOrderService(db, orders, offers, users, queue.PublishOrderPlaced)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg:      cfg,
		Redis:    rdb,
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Public:   handler.NewPublicHandler(concertSvc),
		Purchase: handler.NewPurchaseHandler(orderSvc, offerSvc, users),
		Admin:    handler.NewAdminHandler(concerts, offers, orders, orderSvc),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
