package main

import (
	"arb_backend/internal/config" // Custom import path (Config)
	"arb_backend/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Apply schema migrations
}
