package config

import (
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/frota/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("\n[1/2] Seeding Counters...")
	SeedCounters()

	log.Println("\n[2/2] Seeding Admin User...")
	SeedAdminUser()

	log.Println("\n=== Database Seeding Complete ===")
	return nil
}

// SeedCounters ensures the named sequence rows exist. The requisition
// counter backs the human-facing internal numbers.
func SeedCounters() {
	counters := []models.Counter{
		{Name: models.CounterRequisitions, Value: 0},
	}
	for _, c := range counters {
		var existing models.Counter
		err := DB.First(&existing, "name = ?", c.Name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&c).Error; err != nil {
				log.Printf("Failed to seed counter %s: %v", c.Name, err)
				continue
			}
			log.Printf("Created counter: %s", c.Name)
		} else if err != nil {
			log.Printf("Failed to check counter %s: %v", c.Name, err)
		}
	}
}

// SeedAdminUser creates the bootstrap admin from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when the env vars are unset or the user
// already exists.
func SeedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.User
	err := DB.First(&existing, "email = ?", email).Error
	if err == nil {
		log.Printf("Admin user already exists: %s", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check admin user: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		ID:           uuid.New(),
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Created admin user: %s", email)
}
