package main

import (
	"event_booking/internal/config" // Custom import path (Config)
	"event_booking/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	conn := db.Migrate(dsn)
	db.SeedAdmin(conn, cfg.AdminEmail, cfg.AdminPassword) // Seed the admin account if configured
}
