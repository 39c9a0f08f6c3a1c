// Command seed creates an administrative user so the write endpoints can
// be used on a fresh database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/padmin-io/newsboard/internal/auth"
	"github.com/padmin-io/newsboard/internal/config"
	"github.com/padmin-io/newsboard/internal/storage/postgres"
)

func main() {
	email := flag.String("email", "admin@padmin.io", "admin user email")
	password := flag.String("password", "", "admin user password")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN, nil)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := postgres.NewUserRepository(db).Create(ctx, *email, hash)
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	log.Printf("created admin user %s (id %d)", user.Email, user.ID)
}
