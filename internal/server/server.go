package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"cosmeticwatch/internal/database"
	"cosmeticwatch/internal/handlers"
	"cosmeticwatch/internal/repositories"
	"cosmeticwatch/internal/routes"
	"cosmeticwatch/internal/services"
)

type Server struct {
	port int
	pool *pgxpool.Pool
}

// NewServer connects to the corpus store, runs migrations, wires the
// dependency graph and returns the configured HTTP server plus the pool so
// the entry point can close it on shutdown.
func NewServer() (*http.Server, *pgxpool.Pool) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	s := &Server{
		port: port,
		pool: pool,
	}

	// Dependency injection
	productRepo := repositories.NewProductRepository(pool)
	ingredientRepo := repositories.NewIngredientRepository(pool)

	searchService := services.NewSearchService(productRepo, ingredientRepo)
	productService := services.NewProductService(productRepo, ingredientRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)

	productHandler := handlers.NewProductHandler(searchService, productService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)

	// Initialize Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))

	routes.RegisterRoutes(router, productHandler, ingredientHandler) // register all routes

	// Create and configure the HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, pool
}
