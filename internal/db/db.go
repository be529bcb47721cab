package db

import (
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopadmin/internal/config"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 25
	defaultConnMaxLife  = 30 * time.Minute
)

// Open returns a connected GORM DB for the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return NewMySQL(cfg.MySQLDSN)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance. Affected-row counts report
// matched rows so an update that rewrites identical values is not a conflict.
func NewMySQL(dsn string) (*gorm.DB, error) {
	parsed, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	parsed.ClientFoundRows = true
	parsed.ParseTime = true

	db, err := gorm.Open(mysql.Open(parsed.FormatDSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := tunePool(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSQLite opens (or creates) a SQLite database. Foreign keys are enforced
// so role links cannot outlive their user.
func NewSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "shopadmin.db"
	}
	dsn = withQuery(dsn, "_fk=1&_busy_timeout=5000")

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func tunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(defaultMaxOpenConns)
	sqlDB.SetMaxIdleConns(defaultMaxIdleConns)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLife)
	return nil
}

func withQuery(dsn, query string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + query
	}
	return dsn + "?" + query
}
