package db

import (
	"database/sql"
	"errors"

	"github.com/dori/shiftbook/internal/model"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateEntry is returned by AddEntry when an entry already exists for
// the same (employee, date) pair.
var ErrDuplicateEntry = errors.New("db: an entry already exists for this employee and date")

// AddEntry inserts a new time entry and returns its store-assigned id.
// Violating the unique (employee_id, date) constraint yields ErrDuplicateEntry.
func (db *DB) AddEntry(entry *model.TimeEntry) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO time_entries (employee_id, date, start_time, end_time, start_ampm, end_ampm, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.EmployeeID, entry.Date, entry.StartTime, entry.EndTime, entry.StartAmPm, entry.EndAmPm, entry.Total)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return 0, ErrDuplicateEntry
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateEntry overwrites an entry by id. The entry must carry its id.
func (db *DB) UpdateEntry(entry *model.TimeEntry) error {
	_, err := db.Exec(`
		UPDATE time_entries
		SET employee_id = ?, date = ?, start_time = ?, end_time = ?, start_ampm = ?, end_ampm = ?, total = ?
		WHERE id = ?
	`, entry.EmployeeID, entry.Date, entry.StartTime, entry.EndTime, entry.StartAmPm, entry.EndAmPm, entry.Total, entry.ID)
	return err
}

// DeleteEntry removes a single entry. Deleting an absent id is not an error.
func (db *DB) DeleteEntry(id int64) error {
	_, err := db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	return err
}

// GetAllEntries returns an unordered snapshot of every time entry
func (db *DB) GetAllEntries() ([]model.TimeEntry, error) {
	rows, err := db.Query(`
		SELECT id, employee_id, date, start_time, end_time, start_ampm, end_ampm, total
		FROM time_entries
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetEntriesInRange returns one employee's entries with date in the
// inclusive [startDate, endDate] range, ordered by date.
func (db *DB) GetEntriesInRange(employeeID int64, startDate, endDate string) ([]model.TimeEntry, error) {
	rows, err := db.Query(`
		SELECT id, employee_id, date, start_time, end_time, start_ampm, end_ampm, total
		FROM time_entries
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date
	`, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetEntryByDate returns the entry for one employee and date, or nil if none
// exists. A miss is a normal empty state, not an error.
func (db *DB) GetEntryByDate(employeeID int64, date string) (*model.TimeEntry, error) {
	var e model.TimeEntry
	err := db.QueryRow(`
		SELECT id, employee_id, date, start_time, end_time, start_ampm, end_ampm, total
		FROM time_entries
		WHERE employee_id = ? AND date = ?
	`, employeeID, date).Scan(&e.ID, &e.EmployeeID, &e.Date, &e.StartTime, &e.EndTime, &e.StartAmPm, &e.EndAmPm, &e.Total)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	for rows.Next() {
		var e model.TimeEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.StartTime, &e.EndTime, &e.StartAmPm, &e.EndAmPm, &e.Total); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
