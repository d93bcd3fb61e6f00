// adminctl provisions administrator accounts out of band. Admin rights are
// never grantable through the public API, so an operator with database access
// runs this instead.
//
//	adminctl -create -username ops -password <secret>
//	adminctl -grant -username existinguser
//	adminctl -revoke -username existinguser
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/unlockedcoding/backend/internal/config"
	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/database"
	"github.com/unlockedcoding/backend/pkg/password"
)

func main() {
	var (
		create   = flag.Bool("create", false, "create a new admin user")
		grant    = flag.Bool("grant", false, "grant admin rights to an existing user")
		revoke   = flag.Bool("revoke", false, "revoke admin rights from an existing user")
		username = flag.String("username", "", "target username")
		pass     = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password for -create (or ADMIN_PASSWORD)")
	)
	flag.Parse()

	if *username == "" {
		log.Fatal("adminctl: -username is required")
	}
	if !*create && !*grant && !*revoke {
		log.Fatal("adminctl: one of -create, -grant or -revoke is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("adminctl: failed to load config: %v", err)
	}

	db, err := database.Connect(database.Options{
		DSN:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("adminctl: failed to connect database: %v", err)
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	switch {
	case *create:
		if *pass == "" {
			log.Fatal("adminctl: -password (or ADMIN_PASSWORD) is required with -create")
		}
		if err := createAdmin(ctx, users, *username, *pass); err != nil {
			log.Fatalf("adminctl: %v", err)
		}
		log.Printf("admin user %q created", *username)
	case *grant:
		if err := setAdmin(ctx, users, *username, true); err != nil {
			log.Fatalf("adminctl: %v", err)
		}
		log.Printf("admin rights granted to %q", *username)
	case *revoke:
		if err := setAdmin(ctx, users, *username, false); err != nil {
			log.Fatalf("adminctl: %v", err)
		}
		log.Printf("admin rights revoked from %q", *username)
	}
}

func createAdmin(ctx context.Context, users repository.UserRepository, username, pass string) error {
	if _, err := users.FindByUsername(ctx, username); err == nil {
		return errors.New("username already exists, use -grant instead")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return err
	}

	return users.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	})
}

func setAdmin(ctx context.Context, users repository.UserRepository, username string, isAdmin bool) error {
	user, err := users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	user.IsAdmin = isAdmin
	return users.Update(ctx, user)
}
