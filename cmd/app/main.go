package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sneakhub/sneaker-shop-backend/internal/address"
	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
	"github.com/sneakhub/sneaker-shop-backend/internal/config"
	"github.com/sneakhub/sneaker-shop-backend/internal/email"
	"github.com/sneakhub/sneaker-shop-backend/internal/gateway"
	"github.com/sneakhub/sneaker-shop-backend/internal/order"
	"github.com/sneakhub/sneaker-shop-backend/internal/payment"
	"github.com/sneakhub/sneaker-shop-backend/internal/product"
	"github.com/sneakhub/sneaker-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	addressRepo := address.NewPostgresRepository(db)
	addressService := address.NewService(addressRepo)
	addressHandler := address.NewHandler(addressService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, productService)
	cartHandler := cart.NewHandler(cartService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, userService, addressService, cartService)
	orderHandler := order.NewHandler(orderService)

	// one shared client keeps the gateway timeout in a single place
	gatewayClient := &http.Client{Timeout: cfg.GatewayTimeout}
	gateways := gateway.NewRegistry(
		gateway.NewPaystack(cfg.PaystackSecretKey, gatewayClient),
		gateway.NewKorapay(cfg.KorapaySecretKey, cfg.KorapayRedirectURL, gatewayClient),
	)

	sender := email.NewSMTPSender(cfg)

	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, orderService, cartService, userService, gateways, sender, cfg.GatewayTimeout)
	paymentHandler := payment.NewHandler(paymentService)

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userID" SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			"firstName" TEXT NOT NULL,
			"lastName" TEXT NOT NULL,
			phone TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			brand TEXT,
			category TEXT,
			product_type TEXT,
			product_desc TEXT,
			images TEXT[],
			sizes JSONB NOT NULL DEFAULT '[]',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS address (
			"addressID" SERIAL PRIMARY KEY,
			"userID" INT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			country TEXT,
			"postalCode" TEXT NOT NULL,
			phone TEXT,
			"isDefault" BOOLEAN NOT NULL DEFAULT FALSE,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			"userID" INT PRIMARY KEY,
			items JSONB NOT NULL DEFAULT '[]',
			total NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			"orderID" SERIAL PRIMARY KEY,
			"orderNumber" TEXT NOT NULL UNIQUE,
			"userID" INT NOT NULL,
			"userData" JSONB NOT NULL DEFAULT '{}',
			"shippingData" JSONB NOT NULL DEFAULT '{}',
			"cartData" JSONB NOT NULL DEFAULT '{}',
			"paymentData" JSONB,
			"deliveryMode" INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			"orderActivities" JSONB NOT NULL DEFAULT '[]',
			"isRefunded" BOOLEAN NOT NULL DEFAULT FALSE,
			"isCancelled" BOOLEAN NOT NULL DEFAULT FALSE,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			"paymentID" SERIAL PRIMARY KEY,
			"orderID" INT NOT NULL,
			"userName" TEXT,
			"userEmail" TEXT,
			provider TEXT NOT NULL,
			reference TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			"createdAt" TEXT,
			UNIQUE (provider, reference)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
