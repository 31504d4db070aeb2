package database

import (
	"log"
	"time"

	"trasporto-backend/internal/config"
	"trasporto-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the Postgres connection pool and migrates the schema.
// The pool is bounded; every request-scoped operation shares it.
func NewConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 10
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns / 2)
	sqlDB.SetConnMaxIdleTime(30 * time.Second)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. Exported so the sqlite-backed
// tests can share it.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Account{},
		&model.AccessRequest{},
		&model.Person{},
		&model.Driver{},
		&model.Destination{},
		&model.Transport{},
		&model.AuditLog{},
	)
}

// SeedAdmin creates the bootstrap admin account if no admin exists yet, so
// a fresh deployment is immediately usable.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	var count int64
	if err := db.Model(&model.Account{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.Account{
		Username:     cfg.Username,
		Email:        cfg.Email,
		FullName:     cfg.FullName,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsApproved:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("bootstrap admin account created: %s", cfg.Username)
	return nil
}
