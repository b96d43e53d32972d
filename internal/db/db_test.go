package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/dori/shiftbook/internal/model"
	"github.com/pressly/goose/v3"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testEntry(employeeID int64, date string) *model.TimeEntry {
	return &model.TimeEntry{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  "9:00",
		EndTime:    "5:00",
		StartAmPm:  model.AM,
		EndAmPm:    model.PM,
		Total:      "8.00",
	}
}

func TestEmployeeCRUD(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.CreateEmployee("Alex", 20.00, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if emp.ID == 0 {
		t.Error("CreateEmployee did not assign an id")
	}
	if emp.Color == "" {
		t.Error("CreateEmployee did not assign a palette color")
	}

	second, err := db.CreateEmployee("Blake", 15.50, "teal")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if second.ID <= emp.ID {
		t.Errorf("ids are not monotonic: %d then %d", emp.ID, second.ID)
	}

	if err := db.UpdateEmployee(emp.ID, "Alexandra", 22.50); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}
	got, err := db.GetEmployee(emp.ID)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got == nil || got.Name != "Alexandra" || got.HourlyRate != 22.50 {
		t.Errorf("GetEmployee after update = %+v", got)
	}
	if got.Color != emp.Color {
		t.Errorf("update changed color from %q to %q", emp.Color, got.Color)
	}

	employees, err := db.GetEmployees()
	if err != nil {
		t.Fatalf("GetEmployees: %v", err)
	}
	if len(employees) != 2 {
		t.Errorf("GetEmployees returned %d employees, want 2", len(employees))
	}
}

func TestGetEmployeeMissing(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.GetEmployee(999)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if emp != nil {
		t.Errorf("GetEmployee(999) = %+v, want nil", emp)
	}
}

func TestAddEntryRejectsDuplicateDate(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.CreateEmployee("Alex", 20, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	if _, err := db.AddEntry(testEntry(emp.ID, "2024-03-04")); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	_, err = db.AddEntry(testEntry(emp.ID, "2024-03-04"))
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("duplicate AddEntry error = %v, want ErrDuplicateEntry", err)
	}

	// A different date for the same employee is fine
	if _, err := db.AddEntry(testEntry(emp.ID, "2024-03-05")); err != nil {
		t.Errorf("AddEntry for second date: %v", err)
	}

	// The same date for a different employee is fine
	other, err := db.CreateEmployee("Blake", 15, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if _, err := db.AddEntry(testEntry(other.ID, "2024-03-04")); err != nil {
		t.Errorf("AddEntry for second employee: %v", err)
	}
}

func TestGetEntriesInRange(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.CreateEmployee("Alex", 20, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	other, err := db.CreateEmployee("Blake", 15, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	// Boundary and out-of-range dates around March 2024
	dates := []string{"2024-02-29", "2024-03-01", "2024-03-15", "2024-03-31", "2024-04-01"}
	for _, d := range dates {
		if _, err := db.AddEntry(testEntry(emp.ID, d)); err != nil {
			t.Fatalf("AddEntry(%s): %v", d, err)
		}
	}
	// Another employee's March entry must not leak into the result
	if _, err := db.AddEntry(testEntry(other.ID, "2024-03-15")); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	entries, err := db.GetEntriesInRange(emp.ID, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("GetEntriesInRange: %v", err)
	}

	want := []string{"2024-03-01", "2024-03-15", "2024-03-31"}
	if len(entries) != len(want) {
		t.Fatalf("GetEntriesInRange returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Date != want[i] {
			t.Errorf("entry[%d].Date = %q, want %q", i, e.Date, want[i])
		}
		if e.EmployeeID != emp.ID {
			t.Errorf("entry[%d] belongs to employee %d, want %d", i, e.EmployeeID, emp.ID)
		}
	}
}

func TestGetEntryByDateMissing(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.CreateEmployee("Alex", 20, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	entry, err := db.GetEntryByDate(emp.ID, "2024-03-04")
	if err != nil {
		t.Fatalf("GetEntryByDate: %v", err)
	}
	if entry != nil {
		t.Errorf("GetEntryByDate on empty store = %+v, want nil", entry)
	}
}

func TestDeleteEmployeeCascades(t *testing.T) {
	db := openTestDB(t)

	emp, err := db.CreateEmployee("Alex", 20, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	keep, err := db.CreateEmployee("Blake", 15, "")
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	for _, d := range []string{"2024-03-04", "2024-03-05", "2024-03-06"} {
		if _, err := db.AddEntry(testEntry(emp.ID, d)); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}
	if _, err := db.AddEntry(testEntry(keep.ID, "2024-03-04")); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	if err := db.DeleteEmployee(emp.ID); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}

	all, err := db.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries: %v", err)
	}
	for _, e := range all {
		if e.EmployeeID == emp.ID {
			t.Errorf("entry %d still references deleted employee %d", e.ID, emp.ID)
		}
	}
	if len(all) != 1 {
		t.Errorf("GetAllEntries returned %d entries, want 1", len(all))
	}

	if gone, _ := db.GetEmployee(emp.ID); gone != nil {
		t.Errorf("deleted employee still present: %+v", gone)
	}
}

func TestDeleteEntryAbsentIsNoError(t *testing.T) {
	db := openTestDB(t)
	if err := db.DeleteEntry(12345); err != nil {
		t.Errorf("DeleteEntry on absent id: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	v, err := db.GetSetting(SettingTheme)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "" {
		t.Errorf("GetSetting on empty store = %q, want \"\"", v)
	}

	if err := db.SetSetting(SettingTheme, "nord"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := db.SetSetting(SettingTheme, "dracula"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	v, err = db.GetSetting(SettingTheme)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "dracula" {
		t.Errorf("GetSetting = %q, want %q", v, "dracula")
	}
}

// TestUniqueIndexMigrationPreservesRows verifies the 00002 migration: a
// database created under the old schema (non-unique employee index only)
// keeps its rows across the rebuild, and duplicate (employee, date) pairs
// collapse to the most recently inserted row.
func TestUniqueIndexMigrationPreservesRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(1)

	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("set dialect: %v", err)
	}

	// Stop at the old schema
	if err := goose.UpTo(sqlDB, "migrations", 1); err != nil {
		t.Fatalf("migrate to version 1: %v", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO employees (id, name, hourly_rate, color, created_at, updated_at)
		VALUES (1, 'Alex', 20, 'teal', datetime('now'), datetime('now'))`); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	// Two rows for the same day, as the old schema allowed
	insert := `INSERT INTO time_entries (employee_id, date, start_time, end_time, start_ampm, end_ampm, total)
		VALUES (1, ?, ?, '5:00', 'AM', 'PM', ?)`
	if _, err := sqlDB.Exec(insert, "2024-03-04", "8:00", "9.00"); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	if _, err := sqlDB.Exec(insert, "2024-03-04", "9:00", "8.00"); err != nil {
		t.Fatalf("seed duplicate entry: %v", err)
	}
	if _, err := sqlDB.Exec(insert, "2024-03-05", "9:00", "8.00"); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	// Upgrade to the compound unique index
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("after migration have %d entries, want 2", count)
	}

	var start string
	if err := sqlDB.QueryRow(`SELECT start_time FROM time_entries WHERE employee_id = 1 AND date = '2024-03-04'`).Scan(&start); err != nil {
		t.Fatalf("point lookup: %v", err)
	}
	if start != "9:00" {
		t.Errorf("surviving duplicate start_time = %q, want the newer %q", start, "9:00")
	}

	// The rebuilt table must enforce uniqueness
	if _, err := sqlDB.Exec(insert, "2024-03-04", "7:00", "10.00"); err == nil {
		t.Error("insert of duplicate (employee, date) succeeded after migration")
	}
}
