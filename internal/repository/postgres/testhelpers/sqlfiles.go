package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ApplyMigrations выполняет *.up.sql из каталога в порядке имён
func ApplyMigrations(db *sql.DB, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	if err := execFiles(db, files); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return names, nil
}

// LoadFixtures выполняет файлы из testdata в заданном порядке
func LoadFixtures(db *sql.DB, dir string, names []string) error {
	files := make([]string, len(names))
	for i, n := range names {
		files[i] = filepath.Join(dir, n)
	}
	if err := execFiles(db, files); err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	return nil
}

func execFiles(db *sql.DB, files []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
	}
	return nil
}
