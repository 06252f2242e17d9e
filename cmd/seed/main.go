package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bouyesaturnin/linkvault-app/config"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, "demo@example.com", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", userID, username, password)

	var workID string
	if err := db.QueryRow(`
		INSERT INTO categories (user_id, name, color)
		VALUES ($1, 'Work', '#ff0000')
		RETURNING id
	`, userID).Scan(&workID); err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO categories (user_id, name) VALUES ($1, 'Personal')
	`, userID); err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	fmt.Printf("seeded categories (Work=%s)\n", workID)

	if _, err := db.Exec(`
		INSERT INTO todos (user_id, category_id, title, description)
		VALUES ($1, $2, 'Review pull requests', 'go through the open review queue'),
		       ($1, NULL, 'Buy groceries', '')
	`, userID, workID); err != nil {
		log.Fatalf("failed to seed todos: %v", err)
	}
	fmt.Println("seeded todos")
}
