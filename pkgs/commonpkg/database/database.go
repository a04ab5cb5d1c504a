package database

import (
	"errors"
	"fmt"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/utils"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

const (
	DATABASE_TYPE_NONE     = ""
	DATABASE_TYPE_SQLITE   = "sqlite"
	DATABASE_TYPE_POSTGRES = "postgres"
)

var ErrUnsupportedType = errors.New("unsupported database type")

type DatabaseConfig struct {
	Type string `yaml:"type"` // "", "sqlite" or "postgres"

	Host     string `yaml:"host"`     // For PostgreSQL
	Port     string `yaml:"port"`     // For PostgreSQL
	User     string `yaml:"user"`     // For PostgreSQL
	Password string `yaml:"password"` // For PostgreSQL
	DBName   string `yaml:"dbname"`   // For PostgreSQL

	Path string `yaml:"path"` // For SQLite
}

// Enabled is false when no sink was configured
func (c DatabaseConfig) Enabled() bool {
	return c.Type != DATABASE_TYPE_NONE
}

////////////////////////////////////////////////////////////////////////////////

// ConnectWithConfig opens the configured database and makes sure every
// table of a run exists.
func ConnectWithConfig(dbConfig DatabaseConfig) (*sqlx.DB, error) {
	logger := log.WithFields(log.Fields{
		"caller": "ConnectWithConfig",
		"type":   dbConfig.Type,
	})

	var db *sqlx.DB
	var err error

	switch dbConfig.Type {
	case DATABASE_TYPE_POSTGRES:
		logger.WithFields(log.Fields{
			"host":   dbConfig.Host,
			"port":   dbConfig.Port,
			"dbname": dbConfig.DBName,
		}).Info("Connecting to PostgreSQL database")

		db, err = connectPostgres(
			dbConfig.Host,
			dbConfig.Port,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.DBName,
		)

	case DATABASE_TYPE_SQLITE:
		if dbConfig.Path == "" {
			return nil, fmt.Errorf("SQLite database path is required")
		}
		logger.
			WithField("path", dbConfig.Path).
			Info("Connecting to SQLite database")
		db, err = connectSqlite(dbConfig.Path)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbConfig.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := model.CreateTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

////////////////////////////////////////////////////////////////////////////////

func connectSqlite(path string) (*sqlx.DB, error) {
	logger := log.WithFields(log.Fields{
		"caller": "connectSqlite",
		"path":   path,
	})

	ok, err := utils.PathExists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Debugln("created new db file")
	}

	db, err := sqlx.Connect(
		"sqlite3",
		fmt.Sprintf(
			"file:%s?_journal_mode=WAL&busy_timeout=2147483647",
			path,
		),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func connectPostgres(host, port, user, password, dbname string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	log.WithField("caller", "connectPostgres").Info("Connected to PostgreSQL database")
	return db, nil
}
