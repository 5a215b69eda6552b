package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"dish-delivery-service/internal/adapters/agentstore"
	"dish-delivery-service/internal/adapters/repositories"
	"dish-delivery-service/internal/api"
	"dish-delivery-service/internal/config"
	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/platform/db"
	"dish-delivery-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (postgres catalog/orders, redis agents)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	port := config.Get("PORT", "8080")

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	agents, err := agentstore.NewRedisAgentStore(redisAddr, redisPassword)
	if err != nil {
		log.Fatal(err)
	}

	catalog := repositories.NewPgShopCatalog(database)
	orders := repositories.NewPgOrderRepository(database)

	orderService := services.NewDeliveryOrderService(catalog, agents, orders)
	// Ranking gates default off: a zero-coverage shop is still rankable
	// unless the host opts into the distance/coverage filters.
	orderService.Ranker = services.RankerConfig{
		MaxDistanceKm:      config.GetFloat("MAX_DELIVERY_DISTANCE_KM", 0),
		MinCoveragePercent: config.GetFloat("MIN_INGREDIENT_MATCH_PERCENT", 0),
	}

	defaultUserLocation := domain.GeoPoint{
		Lat: config.GetFloat("DEFAULT_USER_LAT", 37.7749),
		Lng: config.GetFloat("DEFAULT_USER_LNG", -122.4194),
	}

	router := api.NewRouter(catalog, orderService, defaultUserLocation)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
