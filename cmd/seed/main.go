package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/event-guestlist-api/config"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "admin"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// Seeded admin is pre-approved so the first login works out of the box
	var id string
	err = db.QueryRow(`
		INSERT INTO users (first_name, middle_name, last_name, username, password,
			role, authenticated, created_by)
		VALUES ($1, '', $2, $3, $4, $5, true, 'seed')
		ON CONFLICT (username) WHERE deleted_at IS NULL
		DO UPDATE SET authenticated = true, updated_at = now()
		RETURNING id
	`, "Event", "Admin", username, hash, entity.RoleAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", id, username, password)
}
