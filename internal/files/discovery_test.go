package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return path
}

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv")
	writeFile(t, dir, "a.xlsx")
	writeFile(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindInputFiles(".")
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"a.xlsx", "b.csv"}, names)
}

func TestFindReportsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "older.csv")
	newer := writeFile(t, dir, "newer.csv")

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	d := NewDiscovery(dir)
	found, err := d.FindReports(".")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "newer.csv", found[0].Name)
	assert.Equal(t, "older.csv", found[1].Name)
	assert.Positive(t, found[0].Size)
}

func TestFindReportsMissingDirectory(t *testing.T) {
	d := NewDiscovery(t.TempDir())

	found, err := d.FindReports("absent")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindAbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "r.csv")

	d := NewDiscovery("/elsewhere")
	found, err := d.FindReports(dir)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
