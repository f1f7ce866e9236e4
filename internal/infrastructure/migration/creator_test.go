package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmanager/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Notice-Reads", "add_notice_reads"},
		{"add__report__archives", "add_report_archives"},
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

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create users", "Users table")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_users.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_users.down.sql"), first.DownPath)

	second, err := CreateMigration(dir, "Create Properties", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Up: create_users\n"))
	assert.Contains(t, string(up), "-- Users table")

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(down), "-- Down: create_properties\n"))
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000010_later.up.sql",
		"000002_second.up.sql",
		"000002_second.down.sql",
		"notes.txt",
		"abc_bad.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []MigrationEntry{{Version: 2, Name: "second"}, {Version: 10, Name: "later"}}, got)
}

func TestListMigrations_MissingDir(t *testing.T) {
	got, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}

func TestEmbeddedSourceWalksVersions(t *testing.T) {
	src, err := EmbeddedSource()
	require.NoError(t, err)
	assert.Equal(t, "embedded", src.String())

	first, err := src.driver.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	count := 1
	for v := first; ; count++ {
		next, err := src.driver.Next(v)
		if err != nil {
			break
		}
		v = next
	}
	assert.Equal(t, 8, count)
}

func TestResolveSource(t *testing.T) {
	dir := t.TempDir()
	src, err := ResolveSource(dir)
	require.NoError(t, err)
	assert.Equal(t, "file://"+dir, src.String())

	src, err = ResolveSource(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, "embedded", src.String())
}
