package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/adapters/locationiq"
	"delivery-fee-service/internal/adapters/postal"
	"delivery-fee-service/internal/api"
	"delivery-fee-service/internal/config"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (ViaCEP, LocationIQ, Postgres/Redis caches)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("LOCATIONIQ_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("LOCATIONIQ_API_KEY is required")
	}

	port := config.Get("PORT", "8080")
	phone := config.Get("WHATSAPP_PHONE", "5511999999999")

	origin, err := config.Origin()
	if err != nil {
		log.Fatal(err)
	}

	feeTable, err := config.FeeTable()
	if err != nil {
		log.Fatal(err)
	}

	geocodeCache, distanceCache, closeCaches, err := openCaches()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCaches()

	liq, err := locationiq.NewClient(apiKey, config.Viewbox(), geocodeCache, distanceCache)
	if err != nil {
		log.Fatal(err)
	}

	directory := postal.NewViaCEPClient()

	quoteDeps := services.QuoteDeps{
		Geocoder:     liq,
		Distance:     liq,
		Origin:       origin,
		FeeTable:     feeTable,
		DefaultState: config.DefaultState(),
	}

	router := api.NewRouter(directory, quoteDeps, phone)

	log.Printf("Server listening addr=:%s origin=%s max_km=%.1f", port, origin.LonLat(), feeTable.MaxKm())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCaches picks a cache backend from the environment: Redis when
// REDIS_URL is set, Postgres when DATABASE_URL is set, otherwise none.
// Running cacheless is fine for local work; every quote just pays the
// external API round trips.
func openCaches() (ports.GeocodeCache, ports.DistanceCache, func(), error) {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		log.Println("Using Redis geocode/distance caches")
		return cache.NewRedisGeocodeCache(rdb), cache.NewRedisDistanceCache(rdb),
			func() { _ = rdb.Close() }, nil
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := openDB(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := cache.InitSchema(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Println("Using Postgres geocode/distance caches")
		return cache.NewSQLGeocodeCache(db), cache.NewSQLDistanceCache(db),
			func() { _ = db.Close() }, nil
	}

	log.Println("No cache backend configured (REDIS_URL/DATABASE_URL unset)")
	return nil, nil, func() {}, nil
}

func openDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
