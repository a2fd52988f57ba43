// Package jlcpcb is a thin query layer over the JLCPCB parts catalog: an
// SQLite FTS5 database maintained by the kicad-jlcpcb-tools plugin. It
// locates (or downloads) the database and runs full-text part searches;
// it does not build or refresh the index itself.
package jlcpcb

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	dbFileName  = "parts-fts5.db"
	fallbackDir = "/tmp/jlcpcb-parts"

	downloadBaseURL = "https://bouni.github.io/kicad-jlcpcb-tools/"
	chunkCountFile  = "chunk_num_fts5.txt"
	chunkFileStub   = "parts-fts5.db.zip."
)

// pluginDBPath is where the kicad-jlcpcb-tools plugin keeps the catalog.
func pluginDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home,
		".local/share/kicad/7.0/scripting/plugins/kicad-jlcpcb-tools/jlcpcb",
		dbFileName)
}

// FindDatabase returns the path of an existing, non-empty parts database,
// checking the plugin location first and the download fallback second.
func FindDatabase() (string, bool) {
	for _, path := range []string{pluginDBPath(), filepath.Join(fallbackDir, dbFileName)} {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, true
		}
	}
	return "", false
}

// DownloadDatabase fetches the catalog into the fallback location. The
// publisher splits the zipped database into numbered chunks; they are
// fetched in order, concatenated, and extracted. Progress notes go
// through logf (may be nil).
func DownloadDatabase(ctx context.Context, logf func(format string, args ...any)) (string, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := os.MkdirAll(fallbackDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", fallbackDir, err)
	}

	logf("fetching database chunk count")
	countBody, err := fetch(ctx, downloadBaseURL+chunkCountFile)
	if err != nil {
		return "", fmt.Errorf("failed to fetch chunk count: %w", err)
	}
	chunkCount, err := strconv.Atoi(strings.TrimSpace(string(countBody)))
	if err != nil {
		return "", fmt.Errorf("invalid chunk count %q: %w", strings.TrimSpace(string(countBody)), err)
	}
	logf("database split into %d chunks", chunkCount)

	zipPath := filepath.Join(fallbackDir, dbFileName+".zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", zipPath, err)
	}
	defer os.Remove(zipPath)

	for i := 1; i <= chunkCount; i++ {
		logf("downloading chunk %d/%d", i, chunkCount)
		chunk, err := fetch(ctx, fmt.Sprintf("%s%s%03d", downloadBaseURL, chunkFileStub, i))
		if err != nil {
			zipFile.Close()
			return "", fmt.Errorf("failed to fetch chunk %d: %w", i, err)
		}
		if _, err := zipFile.Write(chunk); err != nil {
			zipFile.Close()
			return "", fmt.Errorf("failed to write chunk %d: %w", i, err)
		}
	}
	if err := zipFile.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s: %w", zipPath, err)
	}

	logf("extracting database")
	if err := extractZip(zipPath, fallbackDir); err != nil {
		return "", fmt.Errorf("failed to extract database: %w", err)
	}

	dbPath := filepath.Join(fallbackDir, dbFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("archive did not contain %s: %w", dbFileName, err)
	}
	logf("database download complete")
	return dbPath, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func extractZip(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer zr.Close()

	// Deterministic extraction order.
	files := make([]*zip.File, len(zr.File))
	copy(files, zr.File)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, f := range files {
		name := filepath.Base(f.Name)
		if f.FileInfo().IsDir() || name == "" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(filepath.Join(destDir, name))
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
