// Package registry persists the predefined tool catalog.
package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coolclis/coolclis/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS tools (
    name        TEXT PRIMARY KEY,
    repo        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    added_at    TEXT NOT NULL
);
`

// Store is the SQLite-backed tool registry. Every mutation also rewrites
// a plain JSON export next to the database so the catalog stays readable
// and portable without sqlite tooling.
type Store struct {
	mu         sync.RWMutex
	db         *sql.DB
	exportPath string
}

func Open(dbPath, exportPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create registry schema: %w", err)
	}

	s := &Store{db: db, exportPath: exportPath}

	if err := s.importExport(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to import %s: %w", exportPath, err)
	}

	return s, nil
}

// importExport seeds an empty database from an existing JSON export, so
// a hand-edited or copied tools.json keeps working.
func (s *Store) importExport() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tools").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(s.exportPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var export struct {
		Tools []domain.Tool `json:"tools"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tool := range export.Tools {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO tools (name, repo, description, added_at) VALUES (?, ?, ?, ?)",
			tool.Name, tool.Repo, tool.Description, time.Now().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) Add(tool domain.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing string
	err := s.db.QueryRow("SELECT name FROM tools WHERE name = ?", tool.Name).Scan(&existing)
	if err == nil {
		return fmt.Errorf("tool %s is already registered", tool.Name)
	}
	if err != sql.ErrNoRows {
		return err
	}

	if _, err := s.db.Exec(
		"INSERT INTO tools (name, repo, description, added_at) VALUES (?, ?, ?, ?)",
		tool.Name, tool.Repo, tool.Description, time.Now().Format(time.RFC3339)); err != nil {
		return err
	}

	return s.exportJSON()
}

func (s *Store) Lookup(name string) (*domain.Tool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tool domain.Tool
	err := s.db.QueryRow(
		"SELECT name, repo, description FROM tools WHERE name = ?", name).Scan(
		&tool.Name, &tool.Repo, &tool.Description)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &tool, true, nil
}

func (s *Store) List() ([]domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list()
}

func (s *Store) list() ([]domain.Tool, error) {
	rows, err := s.db.Query("SELECT name, repo, description FROM tools ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var tool domain.Tool
		if err := rows.Scan(&tool.Name, &tool.Repo, &tool.Description); err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}

func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM tools WHERE name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tool %s is not registered", name)
	}

	return s.exportJSON()
}

func (s *Store) exportJSON() error {
	tools, err := s.list()
	if err != nil {
		return err
	}
	if tools == nil {
		tools = []domain.Tool{}
	}

	export := struct {
		Tools []domain.Tool `json:"tools"`
	}{Tools: tools}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.exportPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.exportPath, data, 0644)
}

func (s *Store) Close() error {
	return s.db.Close()
}
