package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soclens/internal/analytics"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "oews_raw.csv")

	w := NewCSVWriter()
	err := w.Write(path, WriteOptions{
		Headers: []string{"occ_code", "a_mean"},
		Records: [][]string{{"29-1141", "89010"}, {"11-1011", ""}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "occ_code,a_mean\n29-1141,89010\n11-1011,\n", string(data))
}

func TestWriteBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "excel.csv")

	w := NewCSVWriter()
	err := w.Write(path, WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteSkipsEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")

	w := NewCSVWriter()
	require.NoError(t, w.Write(path, WriteOptions{Headers: []string{"a"}}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteResultSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "view.csv")

	rs := analytics.ResultSet{
		Name:    analytics.ViewClosestWage,
		Columns: []string{"soc_code", "a_mean"},
		Rows:    [][]string{{"29-1141.01", "89010.5"}},
	}
	w := NewCSVWriter()
	require.NoError(t, w.WriteResultSet(path, rs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "soc_code,a_mean\n29-1141.01,89010.5\n", string(data))
}
