package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options describe how to reach the database. DSN wins when set; otherwise a
// postgres DSN is assembled from the discrete fields.
type Options struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Connect(opts Options) (*gorm.DB, error) {
	dsn := opts.DSN
	if dsn == "" {
		sslMode := opts.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			opts.Host, opts.User, opts.Password, opts.Name, opts.Port, sslMode,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
