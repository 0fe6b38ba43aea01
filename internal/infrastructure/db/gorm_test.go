package db

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	// exactly one ping: gorm's automatic ping is disabled
	mock.ExpectPing()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(driver, "dsn")
		if err != nil {
			t.Fatalf("Dialector(%q): %v", driver, err)
		}
		if d.Name() != driver {
			t.Errorf("Dialector(%q).Name() = %q", driver, d.Name())
		}
	}
	if _, err := Dialector("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenGorm_SQLiteMigrates(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gdb, err := OpenGorm("sqlite", ":memory:", log)
	if err != nil {
		t.Fatalf("OpenGorm: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"users", "accounts", "transactions", "loans", "messages"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("table %s missing after migrate", table)
		}
	}
	if !gdb.Migrator().HasIndex("accounts", "ux_accounts_owner_key") {
		t.Error("owner_key unique index missing")
	}
}
