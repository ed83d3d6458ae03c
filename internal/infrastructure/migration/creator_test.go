package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add opex table", "add_opex_table"},
		{"Add-Opex-Table", "add_opex_table"},
		{"ADD_OPEX_TABLE", "add_opex_table"},
		{"add__opex__table", "add_opex_table"},
		{"Add Checks 123", "add_checks_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	f, err := CreateMigration(dir, "add loan notes", "Adds free-text notes to loans", at)
	require.NoError(t, err)

	assert.Equal(t, "20250314092653", f.Version)
	assert.Equal(t, filepath.Join(dir, "20250314092653_add_loan_notes.up.sql"), f.UpPath)
	assert.Equal(t, filepath.Join(dir, "20250314092653_add_loan_notes.down.sql"), f.DownPath)

	up, err := os.ReadFile(f.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add loan notes")
	assert.Contains(t, string(up), "Adds free-text notes to loans")
	assert.Contains(t, string(up), "2025-03-14T09:26:53Z")

	down, err := os.ReadFile(f.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "", time.Now())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestCreateMigration_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := CreateMigration(dir, "init", "", at)
	require.NoError(t, err)
	_, err = CreateMigration(dir, "init", "", at)
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"20250201000000_add_tasks.up.sql",
		"20250201000000_add_tasks.down.sql",
		"20250101000000_init_schema.up.sql",
		"20250101000000_init_schema.down.sql",
		"README.md",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101000000_init_schema", "20250201000000_add_tasks"}, got)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	got, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMigrations_RepositoryMigrations(t *testing.T) {
	got, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "20250101000000_init_schema", got[0])
}
