package db

import (
	"event_booking/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"golang.org/x/crypto/bcrypt" // Password hashing for the seed admin
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes,
	// including the unique index on bookings (user_id, event_id)
	err = db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Event{}, &domain.Booking{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
	return db
}

// SeedAdmin creates the admin account when it does not exist yet. Roles are
// immutable after registration, so this is the only way an admin comes to be.
func SeedAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return // Nothing to seed
	}
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		logrus.Fatalf("admin lookup failed: %v", err) // Log fatal error if the lookup fails
	}
	if count > 0 {
		return // Admin already present
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err) // Log fatal error if hashing fails
	}
	admin := domain.User{
		Name:     "Administrator",  // Seed display name
		Email:    email,            // Seed email
		Password: string(hash),     // Hashed seed password
		Role:     domain.RoleAdmin, // The one admin role assignment
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin: %v", err) // Log fatal error if the insert fails
	}
	logrus.Info("Admin account seeded.") // Log successful seeding
}
