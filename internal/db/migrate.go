package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lagape/traiteur/internal/models"
)

// ConnectAndMigrate opens the database named by dsn (sqlite by default,
// postgres when the DSN says so) and brings the schema up to date. With
// MIGRATIONS=1 (postgres only) SQL migrations run via golang-migrate;
// otherwise AutoMigrate covers the dev loop.
func ConnectAndMigrate(rawDSN string) (*gorm.DB, error) {
	dsn := NormalizeDSN(rawDSN)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if IsPostgresDSN(dsn) {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// Basic connectivity test
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Println("[DB] Using DSN:", MaskDSN(dsn))

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); (v == "1" || v == "true" || v == "yes") && IsPostgresDSN(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Provider{}, &models.Product{}, &models.Invoice{}, &models.InvoiceLine{},
		}
		for _, m := range modelsToMigrate {
			if migErr := conn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(conn)
	}
	return conn, nil
}

// seed inserts a couple of starter rows for a fresh dev database.
func seed(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Provider{}).Count(&count)
	if count > 0 {
		return
	}
	provider := models.Provider{CompanyName: "Banque Pictet", AddressCity: "Genève"}
	if err := conn.Create(&provider).Error; err != nil {
		log.Println("[DB] seed provider:", err)
		return
	}
	starters := []models.Product{
		{ProviderID: provider.ID, Name: "Plateau apéritif", PriceTTC: 45.00, CostHT: 18.00, Active: true},
		{ProviderID: provider.ID, Name: "Buffet froid (par pers.)", PriceTTC: 32.00, CostHT: 12.50, Active: true},
	}
	for _, p := range starters {
		if err := conn.Create(&p).Error; err != nil {
			log.Println("[DB] seed product:", err)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
