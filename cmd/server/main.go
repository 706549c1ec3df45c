package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/database"
	"github.com/daybookhq/daybook-backend/internal/handlers"
	"github.com/daybookhq/daybook-backend/internal/middleware"
	"github.com/daybookhq/daybook-backend/internal/routes"
	"github.com/daybookhq/daybook-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
		log.Println("⚠️  WARNING: GITHUB_CLIENT_ID / GITHUB_CLIENT_SECRET not set. Login will not work.")
	}

	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	sessions := services.NewSessionStore(database.RedisClient)
	api := handlers.NewAPI(cfg, database.DB, sessions)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, api)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  GET  /github/login")
	log.Println("  GET  /github/callback")
	log.Println("  GET  /logout")
	for _, path := range []string{"/entries", "/goals", "/comments", "/users"} {
		log.Printf("  GET/POST %s, GET/PUT/DELETE %s/{id}", path, path)
	}

	log.Printf("🚀 Daybook backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
