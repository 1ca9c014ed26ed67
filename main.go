package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/zohaib089/shooper-be/config"
	"github.com/zohaib089/shooper-be/controllers"
	"github.com/zohaib089/shooper-be/database"
	"github.com/zohaib089/shooper-be/jobs"
	"github.com/zohaib089/shooper-be/middleware"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/routes"
	"github.com/zohaib089/shooper-be/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to MongoDB; the process must not come up without a database.
	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	log.Println("Connected to MongoDB")

	db := client.Database(database.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("creating indexes: %v", err)
	}

	// Repositories
	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	orderItems := repository.NewOrderItemRepository(db)
	cartProducts := repository.NewCartProductRepository(db)
	reviews := repository.NewReviewRepository(db)

	emailService := utils.NewEmailService(cfg.PostmarkAPIToken, cfg.EmailSender)
	media, err := utils.NewMediaStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("creating uploads directory: %v", err)
	}

	// Controllers
	ctrls := routes.Controllers{
		Auth:            controllers.NewAuthController(cfg, users, tokens, emailService),
		Users:           controllers.NewUserController(users),
		Categories:      controllers.NewCategoryController(categories),
		Products:        controllers.NewProductController(products),
		Reviews:         controllers.NewReviewController(products, reviews, users),
		AdminUsers:      controllers.NewAdminUserController(users, orders, orderItems, cartProducts, tokens),
		AdminCategories: controllers.NewAdminCategoryController(categories, media),
		AdminProducts:   controllers.NewAdminProductController(products, categories, reviews, media),
		AdminOrders:     controllers.NewAdminOrderController(orders, orderItems),
	}

	// Router and middleware
	router := mux.NewRouter()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	guard := middleware.NewAuthGuard(cfg, tokens, users)
	router.Use(middleware.Logging(logger))
	router.Use(guard.Middleware)
	routes.RegisterRoutes(router, cfg.APIPrefix, cfg.UploadsDir, ctrls)

	// Nightly category sweep
	runner := cron.New()
	if err := jobs.Schedule(runner, jobs.NewCategoryCleanup(categories, products)); err != nil {
		log.Fatalf("scheduling category cleanup: %v", err)
	}
	runner.Start()

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		log.Printf("Server running on %s%s", cfg.Addr(), cfg.APIPrefix)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown: HTTP listener first, then cron, then the database.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	<-runner.Stop().Done()
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
}
