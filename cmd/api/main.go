package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jannysd28/technohu/internal/admin"
	"github.com/jannysd28/technohu/internal/auth"
	"github.com/jannysd28/technohu/internal/marketplace"
	appmw "github.com/jannysd28/technohu/internal/middleware"
	"github.com/jannysd28/technohu/internal/payments"
	"github.com/jannysd28/technohu/internal/store"
	"github.com/jannysd28/technohu/internal/user"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using environment")
	}

	st := openStore()

	authHandler := auth.NewHandler(st)
	userHandler := user.NewHandler(st)
	marketHandler := marketplace.NewHandler(st)
	adminHandler := admin.NewHandler(st)
	paymentHandler := payments.NewHandler(st, payments.MockGateway{})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Public auth routes with per-IP rate limiting
	authGroup := e.Group("/api")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Public discovery
	e.GET("/api/projects", marketHandler.GetProjects)
	e.GET("/api/projects/:id", marketHandler.GetProject)
	e.GET("/api/sellers", userHandler.GetSellers)
	e.GET("/api/ratings/:sellerId", marketHandler.GetSellerRatings)

	// Authenticated routes
	g := e.Group("/api")
	g.Use(appmw.JWTMiddleware)

	g.POST("/logout", authHandler.Logout)
	g.GET("/user", authHandler.Me)
	g.GET("/users/:id", userHandler.GetUser)
	g.PATCH("/users/:id", userHandler.UpdateUser)

	g.POST("/projects", marketHandler.CreateProject)

	g.POST("/requests", marketHandler.CreateRequest)
	g.GET("/requests", marketHandler.GetRequests)
	g.POST("/requests/:id/accept", marketHandler.AcceptRequest)
	g.POST("/requests/:id/reject", marketHandler.RejectRequest)
	g.POST("/requests/:id/complete", marketHandler.CompleteRequest)

	g.POST("/pitches", marketHandler.CreatePitch)
	g.GET("/pitches", marketHandler.GetPitches)

	g.POST("/ratings", marketHandler.CreateRating)

	g.POST("/uploads", marketHandler.CreateUpload)
	g.GET("/uploads/:requestId", marketHandler.GetUploadsByRequest)

	g.GET("/sellers/:id/earnings", marketHandler.GetSellerEarnings)
	g.GET("/buyers/:id/spending", marketHandler.GetBuyerSpending)

	g.POST("/payments/create-intent", paymentHandler.CreateIntent)

	// Admin routes
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(appmw.JWTMiddleware)
	adminGroup.Use(appmw.AdminGuard)
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.PATCH("/users/:userId/verify", adminHandler.VerifySeller)
	adminGroup.GET("/stats", adminHandler.Stats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API server listening on :%s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks the backend: Postgres when DATABASE_URL is set, the
// in-memory store otherwise.
func openStore() store.Store {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		return store.NewMemoryStore()
	}

	pg, err := store.NewPostgresStore(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	return pg
}
