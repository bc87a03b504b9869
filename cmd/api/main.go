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

	"github.com/gin-gonic/gin"

	"taxibook/internal/config"
	"taxibook/internal/database"
	"taxibook/internal/middleware"
	"taxibook/internal/modules/admin"
	"taxibook/internal/modules/auth"
	"taxibook/internal/modules/booking"
	"taxibook/internal/modules/events"
	"taxibook/internal/modules/taxi"
	jwtsvc "taxibook/internal/pkg/jwt"
	"taxibook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	customerRepo := repository.NewCustomerRepository(db)
	taxiRepo := repository.NewTaxiRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.CustomerTokenTTL, cfg.AdminTokenTTL)

	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(customerRepo, j)
	authHandler := auth.NewHandler(authService)

	taxiService := taxi.NewService(taxiRepo)
	taxiHandler := taxi.NewHandler(taxiService)

	bookingService := booking.NewService(bookingRepo, driverRepo, hub)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(cfg.AdminUsername, cfg.AdminPassword, j, taxiRepo, driverRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	eventsHandler := events.NewHandler(hub)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	root := r.Group("/")
	{
		authHandler.RegisterPublicRoutes(root)
		taxiHandler.RegisterPublicRoutes(root)
		bookingHandler.RegisterPublicRoutes(root)
		adminHandler.RegisterPublicRoutes(root)

		customer := root.Group("/")
		customer.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(customer)
			bookingHandler.RegisterCustomerRoutes(customer)
		}

		driver := root.Group("/")
		driver.Use(middleware.DriverTokenAuth(cfg.DriverToken))
		{
			bookingHandler.RegisterDriverRoutes(driver)
		}

		adminOnly := root.Group("/")
		adminOnly.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterProtectedRoutes(adminOnly)
			eventsHandler.RegisterProtectedRoutes(adminOnly)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
