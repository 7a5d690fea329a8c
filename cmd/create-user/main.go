package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"go-inventory-api/internal/model"
	"go-inventory-api/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Creates an account (or resets its password) straight in the database,
// for bootstrapping an instance without going through the HTTP API.
func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required, min 6 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	normalized := strings.ToLower(*email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var user model.User
	err = db.Where("email = ?", normalized).First(&user).Error
	switch {
	case err == nil:
		if err := db.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
			log.Fatalf("Failed to update password: %v", err)
		}
		log.Printf("Password for %s has been reset", normalized)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{Email: normalized, PasswordHash: string(hashedPassword)}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		log.Printf("User %s created (id %d)", normalized, user.ID)
	default:
		log.Fatalf("Lookup failed: %v", err)
	}
}
