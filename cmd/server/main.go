package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-room-reservation/internal/config"
	"github.com/iliyamo/hotel-room-reservation/internal/database"
	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	"github.com/iliyamo/hotel-room-reservation/internal/router"
)

func main() {
	// Best-effort: a missing .env just means real env vars are in use.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reportRepo := repository.NewReportRepo(db)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Seed(seedCtx, userRepo, roomRepo, cfg.BcryptCost); err != nil {
		log.Printf("seed: %v", err)
	}
	cancelSeed()

	// Redis is optional: without it the limiter and the cache become
	// pass-throughs and the API still serves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(roomRepo)
	guestHandler := handler.NewGuestReservationHandler(reservationRepo)
	roomHandler := handler.NewRoomHandler(roomRepo)
	receptionHandler := handler.NewReceptionReservationHandler(reservationRepo, roomRepo, userRepo)
	dashboardHandler := handler.NewDashboardHandler(reportRepo)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterClient(e, guestHandler, cfg.JWTSecret)
	router.RegisterReception(e, roomHandler, receptionHandler, dashboardHandler, cfg.JWTSecret)

	// Background consumer; reconnects on its own and never takes the
	// API down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("server exited")
}
