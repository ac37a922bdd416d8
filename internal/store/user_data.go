package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Load returns the raw JSON stored under key for the user, or nil if nothing is stored
func (db *DB) Load(userID, key string) ([]byte, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM user_data WHERE user_id = ? AND key = ?
	`, userID, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return []byte(value), nil
}

// Save stores raw JSON under key for the user, replacing any previous value
func (db *DB) Save(userID, key string, value []byte) error {
	_, err := db.Exec(`
		INSERT INTO user_data (user_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, userID, key, string(value))
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key for the user
func (db *DB) Remove(userID, key string) error {
	if _, err := db.Exec(`DELETE FROM user_data WHERE user_id = ? AND key = ?`, userID, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// KV is the per-user persistence capability the rest of the app depends on
type KV interface {
	Load(userID, key string) ([]byte, error)
	Save(userID, key string, value []byte) error
	Remove(userID, key string) error
}

// LoadJSON decodes the value under key into v.
// Returns false when nothing is stored, leaving v untouched.
func LoadJSON(kv KV, userID, key string, v any) (bool, error) {
	data, err := kv.Load(userID, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key
func SaveJSON(kv KV, userID, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Save(userID, key, data)
}
