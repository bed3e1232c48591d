package config

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/go-relgen/db/schemas/relational/models"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func LoadDBConfig() DBConfig {
	_ = godotenv.Load()

	return DBConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}
}

// DSN renders a libpq connection string for dbName.
func (c DBConfig) DSN(dbName string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, dbName,
	)
}

func (c DBConfig) Validate() error {
	if c.Host == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	return nil
}

func DropAndRecreateDatabase(cfg DBConfig, log *slog.Logger) error {
	adminDB, err := sql.Open("postgres", cfg.DSN("postgres"))
	if err != nil {
		return fmt.Errorf("failed to connect to admin DB: %w", err)
	}
	defer adminDB.Close()

	// Terminate any active connections
	_, _ = adminDB.Exec(`
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid();`, cfg.DBName)

	quotedDBName := fmt.Sprintf(`"%s"`, cfg.DBName)

	if _, err := adminDB.Exec(`DROP DATABASE IF EXISTS ` + quotedDBName); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := adminDB.Exec(`CREATE DATABASE ` + quotedDBName); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info("✅ Dropped and recreated database", "database", cfg.DBName)
	return nil
}

func ConnectDB(cfg DBConfig) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN(cfg.DBName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ResetDatabase drops every user table and migrates the fixture schema.
func ResetDatabase(db *gorm.DB, log *slog.Logger) error {
	if err := db.Exec("DROP SCHEMA public CASCADE").Error; err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	if err := db.Exec("CREATE SCHEMA public").Error; err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Info("✅ Dropped and recreated public schema")

	if err := ResetSessionConfig(db, log); err != nil {
		return err
	}

	if err := ConfirmNoTables(db); err != nil {
		return err
	}
	log.Info("✅ Verified: no user-defined tables remain")

	return Migrate(db)
}

// PrepareSchema migrates the fixture tables, wiping the schema first when
// reset is set.
func PrepareSchema(db *gorm.DB, reset bool, log *slog.Logger) error {
	if reset {
		return ResetDatabase(db, log)
	}
	return Migrate(db)
}

// ResetSessionConfig clears planner and session settings left by earlier
// statements on the connection.
func ResetSessionConfig(db *gorm.DB, log *slog.Logger) error {
	if err := db.Exec("DISCARD ALL").Error; err != nil {
		return fmt.Errorf("failed to discard session state: %w", err)
	}
	log.Info("✅ DISCARD ALL executed")
	if err := db.Exec("RESET ALL").Error; err != nil {
		return fmt.Errorf("failed to reset session settings: %w", err)
	}
	log.Info("✅ RESET ALL executed")
	return nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.PrimaryRecord{},
		&models.SecondaryRecord{},
		&models.DatasetRun{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate fixture schema: %w", err)
	}
	return nil
}

func ConfirmNoTables(db *gorm.DB) error {
	var tables []string
	if err := db.Raw(`SELECT tablename FROM pg_tables WHERE schemaname = 'public'`).Scan(&tables).Error; err != nil {
		return fmt.Errorf("failed to query tables: %w", err)
	}
	if len(tables) > 0 {
		return fmt.Errorf("tables still exist after reset: %v", tables)
	}
	return nil
}
