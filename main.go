package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/buwaneka1/shop-mapper/internal/config"
	"github.com/buwaneka1/shop-mapper/internal/database"
	"github.com/buwaneka1/shop-mapper/internal/router"
	"github.com/buwaneka1/shop-mapper/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seed := flag.Bool("seed", false, "seed demo data and exit")
	flag.Parse()

	// .env is optional; real deployments set SM_* variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	if *seed || cfg.Database.Seed {
		if err := database.Seed(db); err != nil {
			log.Fatalf("seed database: %v", err)
		}
		log.Printf("seed data in place (admin/viewer/rep1..rep5, password123)")
		if *seed {
			return
		}
	}

	images, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatalf("init image store: %v", err)
	}

	r := router.SetupRouter(cfg, db, images)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
