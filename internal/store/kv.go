package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Get returns the raw value stored under (ns, key), or nil if absent.
// Missing keys are not an error; callers treat nil as "use the default".
func (s *Store) Get(ns, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE ns = ? AND k = ?`, ns, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", ns, key, err)
	}
	return []byte(value), nil
}

// Set writes the value under (ns, key), refreshing updated_at. Writes fail
// loudly so callers can retry or surface the failure.
func (s *Store) Set(ns, key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (ns, k, value, updated_at) VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(ns, k) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		ns, key, string(value),
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", ns, key, err)
	}
	return nil
}

// Remove deletes the value under (ns, key). Removing an absent key is a no-op.
func (s *Store) Remove(ns, key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE ns = ? AND k = ?`, ns, key)
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", ns, key, err)
	}
	return nil
}

// Keys lists all keys in a namespace in ascending order.
func (s *Store) Keys(ns string) ([]string, error) {
	rows, err := s.db.Query(`SELECT k FROM kv WHERE ns = ? ORDER BY k`, ns)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", ns, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Namespaces lists distinct namespaces starting with the given prefix.
func (s *Store) Namespaces(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT ns FROM kv WHERE ns LIKE ? || '%' ORDER BY ns`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("namespaces %s: %w", prefix, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, err
		}
		names = append(names, ns)
	}
	return names, rows.Err()
}

// RemoveNamespace deletes every key in a namespace.
func (s *Store) RemoveNamespace(ns string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE ns = ?`, ns)
	if err != nil {
		return fmt.Errorf("remove namespace %s: %w", ns, err)
	}
	return nil
}

// UpdatedAt returns the updated_at stamp for (ns, key), or "" if absent.
func (s *Store) UpdatedAt(ns, key string) (string, error) {
	var stamp string
	err := s.db.QueryRow(`SELECT updated_at FROM kv WHERE ns = ? AND k = ?`, ns, key).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("updated_at %s/%s: %w", ns, key, err)
	}
	return stamp, nil
}

// Wipe removes every record in the store. Used by full data reset only.
func (s *Store) Wipe() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	return nil
}
