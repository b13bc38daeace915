// Package project persists application project records.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// ErrNotFound is returned when no project exists under an id.
var ErrNotFound = errors.New("project not found")

// Service manages project records.
type Service interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	List(ctx context.Context) ([]*model.Project, error)
	Close() error
}

// SQLiteService implements Service on SQLite.
type SQLiteService struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the project database.
func NewSQLite(dbPath string) (*SQLiteService, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteService{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteService) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		package_name TEXT NOT NULL,
		version_name TEXT NOT NULL,
		version_code INTEGER NOT NULL,
		min_sdk INTEGER NOT NULL,
		target_sdk INTEGER NOT NULL,
		theme_color TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Create inserts a new project record.
func (s *SQLiteService) Create(ctx context.Context, p *model.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, package_name, version_name, version_code,
			min_sdk, target_sdk, theme_color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.PackageName, p.VersionName, p.VersionCode,
		p.MinSdk, p.TargetSdk, nullable(p.ThemeColor),
		p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Get retrieves a project by id.
func (s *SQLiteService) Get(ctx context.Context, id string) (*model.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, package_name, version_name, version_code,
		       min_sdk, target_sdk, theme_color, created_at, updated_at
		FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// Update overwrites a project's mutable fields.
func (s *SQLiteService) Update(ctx context.Context, p *model.Project) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, package_name = ?, version_name = ?,
			version_code = ?, min_sdk = ?, target_sdk = ?, theme_color = ?,
			updated_at = ?
		WHERE id = ?`,
		p.Name, p.PackageName, p.VersionName, p.VersionCode,
		p.MinSdk, p.TargetSdk, nullable(p.ThemeColor),
		time.Now().Unix(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all projects, most recently updated first.
func (s *SQLiteService) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, package_name, version_name, version_code,
		       min_sdk, target_sdk, theme_color, created_at, updated_at
		FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Close closes the database.
func (s *SQLiteService) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*model.Project, error) {
	var p model.Project
	var theme sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.Name, &p.PackageName, &p.VersionName, &p.VersionCode,
		&p.MinSdk, &p.TargetSdk, &theme, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan project row: %w", err)
	}

	p.ThemeColor = theme.String
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// MemoryService implements Service in process memory, for tests.
type MemoryService struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

// NewMemory creates an empty in-memory project service.
func NewMemory() *MemoryService {
	return &MemoryService{projects: make(map[string]*model.Project)}
}

func (s *MemoryService) Create(ctx context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *MemoryService) Get(ctx context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryService) Update(ctx context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *MemoryService) List(ctx context.Context) ([]*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryService) Close() error { return nil }
