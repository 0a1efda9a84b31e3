package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/catalog"
	"github.com/touhidul7/orbin-storefront/internal/checkout"
	"github.com/touhidul7/orbin-storefront/internal/httpapi"
	"github.com/touhidul7/orbin-storefront/internal/notify"
)

type Config struct {
	HTTPPort        string
	CartBackend     string // redis | mongo | memory
	RedisAddr       string
	MongoURI        string
	MongoDB         string
	CatalogDB       string
	MigrationsPath  string
	CatalogAPIURL   string // used instead of CatalogDB when set
	KafkaBrokers    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CartBackend:     getEnv("CART_BACKEND", "redis"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "storefront"),
		CatalogDB:       getEnv("CATALOG_DB", "catalog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		CatalogAPIURL:   getEnv("CATALOG_API_URL", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	sink := buildSink(cfg)
	store := buildCartStore(cfg)
	source := buildCatalogSource(cfg)

	cartService := cart.NewService(store, sink)
	manager := checkout.NewManager(cartService, sink)

	cartHandler := httpapi.NewCartHandler(cartService)
	checkoutHandler := httpapi.NewCheckoutHandler(cartService, source, manager)
	productHandler := httpapi.NewProductHandler(source)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Post("/items/{id}/increment", cartHandler.IncrementItem)
			r.Post("/items/{id}/decrement", cartHandler.DecrementItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Open)
			r.Delete("/", checkoutHandler.Close)
			r.Get("/recommendations", checkoutHandler.Recommendations)
			r.Post("/recommendations", checkoutHandler.IncludeRecommendation)
			r.Delete("/recommendations/{id}", checkoutHandler.ExcludeRecommendation)
			r.Put("/contact", checkoutHandler.SetContact)
			r.Put("/delivery", checkoutHandler.SetArea)
			r.Get("/totals", checkoutHandler.Totals)
			r.Post("/submit", checkoutHandler.Submit)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/{id}", productHandler.GetProduct)
			r.Get("/related", productHandler.Related)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildSink(cfg *Config) notify.Sink {
	if cfg.KafkaBrokers == "" {
		return notify.LogSink{}
	}
	return notify.NewKafkaSink(strings.Split(cfg.KafkaBrokers, ",")...)
}

func buildCartStore(cfg *Config) cart.Store {
	switch cfg.CartBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cart.NewRedisStore(client, cart.DefaultKey)
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		return cart.NewMongoStore(db, cart.DefaultKey)
	case "memory":
		return cart.NewMemoryStore()
	default:
		log.Printf("cart backend %q unknown, falling back to memory", cfg.CartBackend)
		return cart.NewMemoryStore()
	}
}

func buildCatalogSource(cfg *Config) catalog.ProductSource {
	if cfg.CatalogAPIURL != "" {
		return catalog.NewHTTPClient(cfg.CatalogAPIURL, 10*time.Second)
	}

	repo, err := catalog.NewRepository(cfg.CatalogDB)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run catalog migrations: %v", err)
	}
	return repo
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
