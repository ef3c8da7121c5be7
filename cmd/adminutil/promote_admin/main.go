package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jannysd28/technohu/internal/store"
)

// Admin is never client-assignable; an operator promotes an existing user
// out-of-band with this utility.
func main() {
	username := flag.String("username", "", "Username of the user to promote to admin")
	flag.Parse()

	if *username == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_admin/main.go -username alice")
	}

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalf("DATABASE_URL must be set; the in-memory store has no durable users to promote")
	}

	ctx := context.Background()
	st, err := store.NewPostgresStore(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer st.Close()

	ct, err := st.Pool().Exec(ctx, `UPDATE users SET role = 'admin' WHERE LOWER(username) = LOWER($1)`, *username)
	if err != nil {
		log.Fatalf("failed to promote user to admin: %v", err)
	}
	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with username: %s", *username)
	}

	fmt.Printf("User %s promoted to admin.\n", *username)
}
