package db

import "database/sql"

// Setting keys persisted across launches.
const (
	SettingSelectedEmployee = "selected_employee"
	SettingTheme            = "theme"
)

// GetSetting returns the stored value for key, or "" when absent so callers
// can fall back to a computed default.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores or replaces the value for key
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
