package models

import (
	"annotator/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDataBase opens the configured database, sizes the connection pool and migrates the schema.
// Network databases are retried with an exponential backoff, sqlite is opened once.
func ConnectDataBase(ctx context.Context, cfg utils.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: newGormLogger(gormlogger.Warn, 200*time.Millisecond),
	}

	retries := cfg.ConnectRetries
	if cfg.Driver == utils.DriverSqlite {
		retries = 0
	}
	b := backoff{delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	var db *gorm.DB
	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(dialector, gormConfig)
		if err == nil {
			break
		}
		if attempt >= retries {
			return nil, fmt.Errorf("cannot connect %s database: %w", cfg.Driver, err)
		}
		log.WithError(err).Warnf("Cannot connect %s database, retrying (%d/%d)", cfg.Driver, attempt+1, retries)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect %s database canceled: %w", cfg.Driver, ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	log.Info(fmt.Sprintf("Connected %s database", cfg.Driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or extends the tables for all records.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Project{}, &Image{}, &Annotation{}, &Drawing{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func openDialector(cfg utils.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case utils.DriverSqlite:
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	case utils.DriverMysql:
		dsnConfig, err := mysqldriver.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		// created_at columns are scanned into time.Time
		dsnConfig.ParseTime = true
		return mysql.New(mysql.Config{DSN: dsnConfig.FormatDSN(), DSNConfig: dsnConfig}), nil
	case utils.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// sqliteDSN turns on foreign keys (needed for cascading deletes), WAL and a busy timeout
// unless the DSN already sets them.
func sqliteDSN(dsn string) string {
	params := []struct{ key, value string }{
		{"_foreign_keys", "on"},
		{"_journal_mode", "WAL"},
		{"_busy_timeout", "5000"},
	}
	for _, p := range params {
		if strings.Contains(dsn, p.key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + p.key + "=" + p.value
	}
	return dsn
}

type backoff struct {
	delay    time.Duration
	maxDelay time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay || d <= 0 {
		return b.maxDelay
	}
	return d
}

// gormLogger sends gorm's output to logrus.
type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) gormlogger.Interface {
	return gormLogger{level: level, slowThreshold: slowThreshold}
}

func (l gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l gormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		log.Infof(s, args...)
	}
}

func (l gormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		log.Warnf(s, args...)
	}
}

func (l gormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		log.Errorf(s, args...)
	}
}

func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	sql, rows := fc()
	elapsed := time.Since(begin)
	entry := log.WithFields(log.Fields{"duration": elapsed, "rows": rows, "sql": sql})
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		entry.WithError(err).Error("gorm query error")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		entry.Warn("gorm slow query")
	default:
		entry.Debug("gorm query")
	}
}
