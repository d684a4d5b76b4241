package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/velnyk/cafepos/config"
	"github.com/velnyk/cafepos/internal/auth"
	handler "github.com/velnyk/cafepos/internal/handler/http"
	"github.com/velnyk/cafepos/internal/middleware"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/repository"
	"github.com/velnyk/cafepos/internal/repository/postgres"
	"github.com/velnyk/cafepos/internal/service"
	"go.uber.org/zap"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	err = db.Migrate()
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService, token)

	// auth
	authService := service.NewAuthService(userRepo, token)
	authHandler := handler.NewAuthHandler(authService)

	// menu
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	menuService := service.NewMenuService(categoryRepo, menuItemRepo)
	menuHandler := handler.NewMenuHandler(menuService)

	// cart
	cartRepo := repository.NewCartRepository(db)
	cartService := service.NewCartService(cartRepo, menuItemRepo)
	cartHandler := handler.NewCartHandler(cartService)

	// loyalty
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, cartRepo, loyaltyRepo, logger)
	orderHandler := handler.NewOrderHandler(orderService)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", authHandler.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))

		group.Get("/api/menu/categories", menuHandler.ListCategories())
		group.Get("/api/menu/items", menuHandler.ListItems())
		group.Get("/api/menu/items/{id}", menuHandler.GetItem())

		group.Get("/api/user/cart", cartHandler.ListCart())
		group.Post("/api/user/cart", cartHandler.AddItem())
		group.Delete("/api/user/cart/{id}", cartHandler.RemoveLine())

		group.Post("/api/user/orders", orderHandler.PlaceOrder())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
		group.Get("/api/user/orders/{id}", orderHandler.GetUserOrder())
		group.Post("/api/user/orders/{id}/cancel", orderHandler.CancelOrder())

		group.Get("/api/user/loyalty", loyaltyHandler.GetCard())
		group.Get("/api/user/loyalty/transactions", loyaltyHandler.ListTransactions())
	})

	// staff-only routes
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Use(handler.RequireRole(models.RoleAdmin))

		group.Post("/api/admin/categories", menuHandler.CreateCategory())
		group.Put("/api/admin/categories/{id}", menuHandler.UpdateCategory())
		group.Delete("/api/admin/categories/{id}", menuHandler.DeleteCategory())

		group.Post("/api/admin/items", menuHandler.CreateItem())
		group.Put("/api/admin/items/{id}", menuHandler.UpdateItem())
		group.Delete("/api/admin/items/{id}", menuHandler.DeleteItem())

		group.Get("/api/admin/users", userHandler.ListUsers())
		group.Put("/api/admin/users/{id}", userHandler.UpdateUser())
		group.Delete("/api/admin/users/{id}", userHandler.DeleteUser())

		group.Get("/api/admin/cards", loyaltyHandler.ListCards())
		group.Post("/api/admin/cards", loyaltyHandler.EnrollCard())
		group.Put("/api/admin/cards/{id}", loyaltyHandler.UpdateCard())
		group.Delete("/api/admin/cards/{id}", loyaltyHandler.DeleteCard())

		group.Get("/api/admin/orders", adminOrderHandler.ListOrders())
		group.Put("/api/admin/orders/{id}/status", adminOrderHandler.SetOrderStatus())
		group.Put("/api/admin/orders/{id}", adminOrderHandler.UpdateOrder())
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
