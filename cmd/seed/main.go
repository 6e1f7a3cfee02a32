package main

import (
	"log"

	"kosku-backend/internal/config"
	"kosku-backend/internal/database"
	"kosku-backend/internal/seed"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if err := seed.Run(database.DB); err != nil {
		log.Fatalf("Seeding gagal: %v", err)
	}
}
