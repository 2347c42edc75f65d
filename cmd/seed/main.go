// Command seed bootstraps a first admin account so a fresh deployment has a
// working login.
package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aerosafe/internal/config"
	"aerosafe/internal/db"
	"aerosafe/internal/model"
	"aerosafe/internal/repository"
)

func main() {
	name := flag.String("name", "Administrator", "display name for the admin account")
	email := flag.String("email", "", "email for the admin account (required)")
	uid := flag.String("admin-id", "", "admin identifier, e.g. AS-ADM-001")
	password := flag.String("password", "", "password for the admin account (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Account{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	repo := repository.NewAccountRepository(gormDB)
	ctx := context.Background()

	if existing, err := repo.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Printf("account %s already exists (role %s), nothing to do", existing.Email, existing.Role)
		return
	} else if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("check existing account: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	account := &model.Account{
		Name:         *name,
		Email:        *email,
		Role:         model.RoleAdmin,
		UID:          *uid,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, account); err != nil {
		log.Fatalf("create admin account: %v", err)
	}

	log.Printf("admin account %s created (id %s)", account.Email, account.ID)
}
