package db

import (
	"database/sql"
	"time"

	"github.com/dori/shiftbook/internal/model"
)

// GetEmployees returns all employees ordered by name
func (db *DB) GetEmployees() ([]model.Employee, error) {
	rows, err := db.Query(`
		SELECT id, name, hourly_rate, color, created_at, updated_at
		FROM employees
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.HourlyRate, &e.Color, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee returns a single employee by ID, or nil if absent
func (db *DB) GetEmployee(id int64) (*model.Employee, error) {
	var e model.Employee
	err := db.QueryRow(`
		SELECT id, name, hourly_rate, color, created_at, updated_at
		FROM employees WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.HourlyRate, &e.Color, &e.CreatedAt, &e.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee creates a new employee. The color falls back to a random
// palette pick when empty. The store assigns the id.
func (db *DB) CreateEmployee(name string, hourlyRate float64, color string) (*model.Employee, error) {
	if color == "" {
		color = model.RandomColor()
	}
	now := time.Now()

	res, err := db.Exec(`
		INSERT INTO employees (name, hourly_rate, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, hourlyRate, color, now, now)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Employee{
		ID:         id,
		Name:       name,
		HourlyRate: hourlyRate,
		Color:      color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateEmployee updates an employee's name and hourly rate.
// The color is fixed at creation and never edited.
func (db *DB) UpdateEmployee(id int64, name string, hourlyRate float64) error {
	now := time.Now()
	_, err := db.Exec(`
		UPDATE employees SET name = ?, hourly_rate = ?, updated_at = ? WHERE id = ?
	`, name, hourlyRate, now, id)
	return err
}

// DeleteEmployee removes an employee and every one of their time entries in
// a single transaction, so concurrent readers never observe orphan entries.
func (db *DB) DeleteEmployee(id int64) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM time_entries WHERE employee_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM employees WHERE id = ?`, id)
		return err
	})
}
