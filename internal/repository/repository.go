package repository

import (
	"log"
	"time"

	"github.com/dinerozz/datahive-backend/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func NewRepository(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		log.Println("❌ Error connecting to database:", err)
		return nil, err
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Connected to database")

	return db, nil
}
