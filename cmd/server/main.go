package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/imdb_search_go/internal/api"
	"github.com/imdb_search_go/internal/config"
	"github.com/imdb_search_go/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, relying on process environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One pool for the process; each request checks out its own connection.
	db, err := store.Open(ctx, cfg.Database.ConnParams(), cfg.Database.PoolOptions())
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	defer db.Close()

	log.Printf("connected to mysql %s at %s", cfg.Database.Name, cfg.Database.Host)

	engine := store.NewEngine(db, nil, log.Default())
	server := api.NewServer(engine, db, api.Options{
		QueryTimeout: cfg.Server.QueryTimeout,
		Logger:       log.Default(),
	})

	log.Printf("starting http server on %s", cfg.Server.Addr)
	if err := server.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
