package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfare/itinerary"
	"wayfare/kvstore"
	"wayfare/middleware"
	"wayfare/ratelim"
	"wayfare/routes"
	"wayfare/search"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// openKV selects the persistence backend from KV_BACKEND.
func openKV(ctx context.Context) kvstore.Store {
	switch backend := os.Getenv("KV_BACKEND"); backend {
	case "memory":
		return kvstore.NewMemory()
	case "redis":
		return kvstore.NewRedis()
	case "mongo":
		store, err := kvstore.NewMongo(ctx)
		if err != nil {
			log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
		}
		return store
	case "", "file":
		dir := os.Getenv("DATA_DIR")
		if dir == "" {
			dir = "data"
		}
		store, err := kvstore.NewFile(dir)
		if err != nil {
			log.Fatalf("❌ Failed to open data dir %s: %v", dir, err)
		}
		return store
	default:
		log.Fatalf("❌ Unknown KV_BACKEND %q", backend)
		return nil
	}
}

// setupRouter builds the router with all routes.
func setupRouter(rl *ratelim.RateLimiter, ih *itinerary.Handler, sh *search.Handler) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddItineraryRoutes(router, rl, ih)
	routes.AddSearchRoutes(router, rl, sh)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx := context.Background()
	kv := openKV(ctx)

	// the store is loaded once and injected; it is the single source of
	// truth for the rest of the process
	store := itinerary.NewStore(kv)
	store.Load(ctx)

	rateLimiter := ratelim.NewRateLimiter()
	itineraryHandler := itinerary.NewHandler(store)
	searchHandler := search.NewHandler(store, search.NewHistory(kv))

	router := setupRouter(rateLimiter, itineraryHandler, searchHandler)

	// apply middleware: CORS → security headers → request id → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.Logging(middleware.RequestID(middleware.SecurityHeaders(corsHandler)))

	// create HTTP server
	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: flush pending file-store snapshots
	if closer, ok := kv.(interface{ Close() }); ok {
		server.RegisterOnShutdown(closer.Close)
	}

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
