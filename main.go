package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"atfplatform/backend/cache"
	"atfplatform/backend/config"
	"atfplatform/backend/database"
	"atfplatform/backend/realtime"
	"atfplatform/backend/routes"
	"atfplatform/backend/storage"
	"atfplatform/backend/telemetry"
)

func main() {
	cfg := config.Load()

	shutdown := telemetry.Setup("atf-portal")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	database.Connect(cfg.DatabaseURL)
	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	// Redis holds wizard state, the logout denylist and rate counters, so the
	// service cannot run without it.
	if err := cache.Init(cfg.RedisAddr, cfg.RedisDB); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer cache.Close()

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	hub := realtime.NewHub()

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	routes.Register(r, cfg, hub, store)

	if cfg.StorageType == "filesystem" {
		r.Static("/uploads", cfg.UploadDir)
	}

	mux := http.NewServeMux()
	mux.Handle("/realtime/", realtime.Handler(hub, cfg.JWTSecret))
	mux.Handle("/", r)

	log.Printf("server on :%s", cfg.Port)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: otelhttp.NewHandler(mux, "http.server"),
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
