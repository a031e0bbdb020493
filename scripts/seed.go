// Seeds a handful of todos for local development.
// Usage: PG_DSN=postgres://... go run ./scripts
package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
)

func main() {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		log.Fatal("PG_DSN is required")
	}
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	titles := []string{"Buy groceries", "Write weekly report", "Review pull requests"}
	for _, title := range titles {
		if _, err := conn.Exec(ctx, `INSERT INTO todos (title) VALUES ($1)`, title); err != nil {
			log.Fatalf("insert %q: %v", title, err)
		}
	}
	log.Printf("seeded %d todos", len(titles))
}
