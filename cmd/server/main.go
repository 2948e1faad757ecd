package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/router"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate
	// limiting without affecting the booking flows.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	enrollRepo := repository.NewEnrollmentRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	// Services and handlers
	bookingSvc := service.NewBookingService(roomRepo, enrollRepo, ticketRepo, bookingRepo)
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	bookingH := handler.NewBookingHandler(bookingSvc)
	bookingH.PublishEvent = queue.PublishBookingEvent
	publicH := handler.NewPublicHandler(hotelRepo, roomRepo)

	// Booking event consumer runs for the lifetime of the process and
	// reconnects on broker failure.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	log.Printf("starting server on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
