package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"video-streaming/internal/config"
	"video-streaming/internal/entity"
)

func InitDB(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseDSN
	if dsn == "" {
		if cfg.DBHost == "" {
			cfg.DBHost = "db"
		}
		if cfg.DBPort == "" {
			cfg.DBPort = "5432"
		}
		if cfg.DBUser == "" {
			cfg.DBUser = "postgres"
		}
		if cfg.DBPassword == "" {
			cfg.DBPassword = "postgres"
		}
		if cfg.DBName == "" {
			cfg.DBName = "videos"
		}
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}

	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	// Migrate the schema
	if err := db.AutoMigrate(&entity.Video{}); err != nil {
		return nil, err
	}

	return db, nil
}

// Connect opens a gorm handle for the given DSN. Postgres DSNs go to the
// postgres driver, anything else is treated as a SQLite path (":memory:"
// included), which keeps local development and tests cgo-free.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "host=") || strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
