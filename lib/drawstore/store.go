// Package drawstore persists per-product draw history as
// line-delimited JSON, one record per line, ordered ascending by
// draw date.
package drawstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"vietlott-backend/lib/scrapers/vietlott"
)

type Store struct {
	path string
}

func New(path string) Store {
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

// Read loads the full history, sorted ascending by date. The backing
// file must exist, a missing file satisfies errors.Is with
// fs.ErrNotExist.
func (s Store) Read() ([]vietlott.DrawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open draw store: %w", err)
	}
	defer f.Close()

	var records []vietlott.DrawRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var record vietlott.DrawRecord
		if err := json.Unmarshal(text, &record); err != nil {
			return nil, fmt.Errorf("decode draw store line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read draw store: %w", err)
	}

	sortByDate(records)
	return records, nil
}

// ReadOrEmpty is Read, except a missing file yields an empty history.
func (s Store) ReadOrEmpty() ([]vietlott.DrawRecord, error) {
	records, err := s.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return records, err
}

// Write rewrites the whole store in one pass. The write truncates in
// place, a crash mid-rewrite can lose the file; see the repo design
// notes.
func (s Store) Write(records []vietlott.DrawRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create draw store dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("rewrite draw store: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			f.Close()
			return fmt.Errorf("encode draw record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// KnownIDs collects the draw ids present in `records`.
func KnownIDs(records []vietlott.DrawRecord) map[string]struct{} {
	ids := make(map[string]struct{}, len(records))
	for i := range records {
		ids[records[i].ID] = struct{}{}
	}
	return ids
}

// Merge appends the records of `fetched` whose id is not yet present
// in `existing` and re-sorts ascending by date. The crawl loop
// already refuses to cross a known id, this filter is deliberately
// kept independent of that check.
func Merge(existing, fetched []vietlott.DrawRecord) ([]vietlott.DrawRecord, int) {
	known := KnownIDs(existing)
	merged := slices.Clone(existing)
	added := 0
	for _, record := range fetched {
		if _, ok := known[record.ID]; ok {
			continue
		}
		known[record.ID] = struct{}{}
		merged = append(merged, record)
		added++
	}
	sortByDate(merged)
	return merged, added
}

func sortByDate(records []vietlott.DrawRecord) {
	slices.SortStableFunc(records, func(a, b vietlott.DrawRecord) int {
		return a.Date.Compare(b.Date.Time)
	})
}
