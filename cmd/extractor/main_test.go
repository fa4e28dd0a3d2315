package main

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soclens/internal/config"
	"soclens/internal/fetch"
)

func buildArchive(t *testing.T, member string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(member)
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func testPaths(t *testing.T) config.PathsConfig {
	t.Helper()

	root := t.TempDir()
	paths := config.PathsConfig{
		DataDir:      root,
		DownloadsDir: filepath.Join(root, "downloads"),
		RawDir:       filepath.Join(root, "raw"),
		CuratedDir:   filepath.Join(root, "curated"),
	}
	require.NoError(t, paths.EnsureDirs())
	return paths
}

func TestFetchBothSavesWorkbooks(t *testing.T) {
	oewsArchive := buildArchive(t, "oesm24st/state_M2024_dl.xlsx", []byte("oews-workbook"))
	skillsData := []byte("skills-workbook")

	mux := http.NewServeMux()
	mux.HandleFunc("/oesm24st.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(oewsArchive)
	})
	mux.HandleFunc("/Skills.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Write(skillsData)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths = testPaths(t)
	cfg.Sources.SkillsURL = srv.URL + "/Skills.xlsx"

	client := fetch.NewClient(fetch.WithRateLimit(100, 2))
	err := fetchBoth(context.Background(), cfg, client, srv.URL+"/oesm24st.zip")
	require.NoError(t, err)

	oews, err := os.ReadFile(cfg.Paths.DownloadPath(oewsWorkbookName))
	require.NoError(t, err)
	assert.Equal(t, []byte("oews-workbook"), oews)

	skills, err := os.ReadFile(cfg.Paths.DownloadPath(skillsWorkbookName))
	require.NoError(t, err)
	assert.Equal(t, skillsData, skills)
}

func TestFetchBothFailsWithoutWorkbookMember(t *testing.T) {
	archive := buildArchive(t, "oesm24st/readme.txt", []byte("no workbook"))

	mux := http.NewServeMux()
	mux.HandleFunc("/oesm24st.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	mux.HandleFunc("/Skills.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("skills-workbook"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths = testPaths(t)
	cfg.Sources.SkillsURL = srv.URL + "/Skills.xlsx"

	client := fetch.NewClient(fetch.WithRateLimit(100, 2))
	err := fetchBoth(context.Background(), cfg, client, srv.URL+"/oesm24st.zip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract oews workbook")
}
