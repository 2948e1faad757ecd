// Package database opens and configures the MySQL connection pool
// shared by every repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL, applies pool limits and verifies the
// connection with a short ping. Pool limits default to values sized
// for a single booking-service instance and can be tuned with
// DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS and DB_CONN_MAX_LIFETIME.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(poolInt("DB_MAX_OPEN_CONNS", 20))
	db.SetMaxIdleConns(poolInt("DB_MAX_IDLE_CONNS", 10))
	db.SetConnMaxLifetime(poolDur("DB_CONN_MAX_LIFETIME", 15*time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// buildDSN assembles the driver DSN. parseTime maps DATETIME columns
// onto time.Time and loc=UTC keeps booking timestamps comparable
// across instances regardless of server timezone.
func buildDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

func poolInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func poolDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
