package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/daviddao/leapsec/pkg/nist"
	"github.com/daviddao/leapsec/pkg/store"
)

// defaultURL is the IERS mirror of leap-seconds.list. NIST publishes the
// same file over FTP only, which is useless behind most firewalls.
const defaultURL = "https://hpiers.obspm.fr/iers/bul/bulc/ntp/leap-seconds.list"

// maxFetchSize bounds the response body; the real file is under 10 KiB.
const maxFetchSize = 1 << 20

// app holds shared state for all CLI subcommands.
type app struct {
	store store.Interface
	url   string // source URL from LEAPSEC_URL
	file  string // default input file from LEAPSEC_FILE
}

// newApp opens the cache database. Creates the cache directory if using
// the default path.
func newApp() (*app, error) {
	dbPath := envOr("LEAPSEC_DB", "")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory: %w (set LEAPSEC_DB)", err)
		}
		dir := filepath.Join(home, ".leapsec")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", dir, err)
		}
		dbPath = filepath.Join(dir, "cache.db")
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open cache %q: %w", dbPath, err)
	}
	return &app{
		store: s,
		url:   envOr("LEAPSEC_URL", defaultURL),
		file:  envOr("LEAPSEC_FILE", ""),
	}, nil
}

// Close releases the cache database.
func (a *app) Close() { a.store.Close() }

// loadDocument resolves the list to operate on: an explicit --file flag,
// then LEAPSEC_FILE, then the newest cached record. The returned string
// names the source for error messages.
func (a *app) loadDocument(fileFlag string) (*nist.Document, string, error) {
	path := fileFlag
	if path == "" {
		path = a.file
	}
	if path != "" {
		data, err := readInput(path)
		if err != nil {
			return nil, path, err
		}
		doc, err := nist.Parse(data)
		if err != nil {
			return nil, path, fmt.Errorf("%s: %w", path, err)
		}
		return doc, path, nil
	}

	rec, err := a.store.Latest()
	if err != nil {
		return nil, "cache", err
	}
	if rec == nil {
		return nil, "cache", fmt.Errorf("cache is empty: run 'lsc fetch' or pass --file")
	}
	doc, err := nist.Parse(rec.Body)
	if err != nil {
		return nil, rec.Source, fmt.Errorf("cached copy of %s: %w", rec.Source, err)
	}
	return doc, rec.Source, nil
}

// fetchDocument downloads and validates the list from url, returning the
// parsed document and the raw bytes.
func (a *app) fetchDocument(url string) (*nist.Document, []byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return nil, nil, err
	}
	doc, err := nist.Parse(body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", url, err)
	}
	return doc, body, nil
}

// readInput reads a file path, with "-" meaning stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
