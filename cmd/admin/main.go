// Package main provides admin account management utilities for Khabri.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"khabri/internal/config"
	"khabri/internal/database"
	"khabri/internal/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go create <username>          - Create an admin account")
		fmt.Println("  go run ./cmd/admin/main.go reset-password <username>  - Set a new password")
		fmt.Println("  go run ./cmd/admin/main.go rehash                     - Hash any plaintext password rows")
		fmt.Println("  go run ./cmd/admin/main.go list                       - List all admin accounts")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "create":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go create <username>")
			os.Exit(1)
		}
		createAdmin(db, os.Args[2])

	case "reset-password":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go reset-password <username>")
			os.Exit(1)
		}
		resetPassword(db, os.Args[2])

	case "rehash":
		rehashPlaintext(db)

	case "list":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func promptPassword() string {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := strings.TrimSpace(string(raw))
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}
	return password
}

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

func createAdmin(db *gorm.DB, username string) {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		fmt.Printf("User %s already exists (ID: %d)\n", username, existing.ID)
		os.Exit(1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Database error: %v", err)
	}

	user := models.User{
		Username: username,
		Password: hashPassword(promptPassword()),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Created admin %s (ID: %d)\n", user.Username, user.ID)
}

func resetPassword(db *gorm.DB, username string) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User %s not found\n", username)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	user.Password = hashPassword(promptPassword())
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}
	fmt.Printf("Password updated for %s (ID: %d)\n", user.Username, user.ID)
}

// rehashPlaintext finds rows imported from the old deployment that still hold
// plaintext passwords and wraps them in bcrypt. Login refuses plaintext rows,
// so run this once after importing legacy data.
func rehashPlaintext(db *gorm.DB) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	rehashed := 0
	for i := range users {
		if isBcryptHash(users[i].Password) {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", users[i].Username, err)
		}
		if err := db.Model(&users[i]).Update("password", string(hash)).Error; err != nil {
			log.Fatalf("Failed to update %s: %v", users[i].Username, err)
		}
		fmt.Printf("Rehashed password for %s (ID: %d)\n", users[i].Username, users[i].ID)
		rehashed++
	}
	fmt.Printf("Done. %d of %d accounts rehashed.\n", rehashed, len(users))
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func listAdmins(db *gorm.DB) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No admin accounts found")
		return
	}
	fmt.Printf("%-6s %-24s %-10s %s\n", "ID", "USERNAME", "PASSWORD", "CREATED")
	for _, u := range users {
		state := "bcrypt"
		if !isBcryptHash(u.Password) {
			state = "PLAINTEXT"
		}
		fmt.Printf("%-6d %-24s %-10s %s\n", u.ID, u.Username, state, u.CreatedAt.Format("2006-01-02"))
	}
}
