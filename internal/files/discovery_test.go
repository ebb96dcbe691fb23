package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"b_survey.xlsx", "a_survey.csv", "notes.txt", "old.XLS"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	return dir
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestListFiles_SortedSkipsDirectories(t *testing.T) {
	dir := setupDataDir(t)
	d := NewDiscovery(dir)

	files, err := d.ListFiles(".")
	require.NoError(t, err)

	assert.Equal(t, []string{"a_survey.csv", "b_survey.xlsx", "notes.txt", "old.XLS"}, names(files))
}

func TestFindDataFiles(t *testing.T) {
	dir := setupDataDir(t)
	d := NewDiscovery(dir)

	files, err := d.FindDataFiles(".")
	require.NoError(t, err)

	// Extension matching is case-insensitive; notes.txt is excluded.
	assert.Equal(t, []string{"a_survey.csv", "b_survey.xlsx", "old.XLS"}, names(files))
}

func TestFindExcelAndCSVFiles(t *testing.T) {
	dir := setupDataDir(t)
	d := NewDiscovery(dir)

	excel, err := d.FindExcelFiles(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"b_survey.xlsx", "old.XLS"}, names(excel))

	csvs, err := d.FindCSVFiles(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_survey.csv"}, names(csvs))
}

func TestListFiles_AbsoluteDir(t *testing.T) {
	dir := setupDataDir(t)
	d := NewDiscovery(filepath.Join("/", "nonexistent", "base"))

	files, err := d.ListFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestListFiles_MissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())

	_, err := d.ListFiles("nope")
	assert.Error(t, err)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.csv", ModTime: now.Add(-2 * time.Hour)},
		{Name: "new.csv", ModTime: now},
		{Name: "middle.csv", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "new.csv", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
