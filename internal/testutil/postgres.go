package testutil

import (
	"context"
	"net"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DatabaseURLEnv names the variable holding the Postgres URL used by
// database-backed tests.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// DatabaseURL returns the test database URL, or "" when unset.
func DatabaseURL() string {
	return strings.TrimSpace(os.Getenv(DatabaseURLEnv))
}

// DatabaseAvailable checks that TEST_DATABASE_URL is set and its host accepts
// TCP connections.
func DatabaseAvailable() bool {
	dsn := DatabaseURL()
	if dsn == "" {
		return false
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		host = net.JoinHostPort(u.Hostname(), "5432")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// SkipIfDatabaseUnavailable skips the test if no Postgres is reachable.
func SkipIfDatabaseUnavailable(t *testing.T) {
	t.Helper()
	if !DatabaseAvailable() {
		t.Skipf("Postgres not available (set %s)", DatabaseURLEnv)
	}
}

// OpenDatabase opens a gorm handle on the test database and closes it when
// the test ends. The database must already exist.
func OpenDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	SkipIfDatabaseUnavailable(t)

	db, err := gorm.Open(postgres.Open(DatabaseURL()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// TruncateTables empties tables, following foreign keys.
func TruncateTables(t *testing.T, db *gorm.DB, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
	}
	if err := db.Exec("TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE").Error; err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
