package drawstore

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vietlott-backend/lib/scrapers/vietlott"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func record(id, date string, numbers ...int) vietlott.DrawRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return vietlott.DrawRecord{
		Date:        vietlott.NewDate(d),
		ID:          id,
		Result:      vietlott.Result{Numbers: numbers},
		ProcessTime: time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC),
	}
}

func TestReadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.jsonl"))

	_, err := store.Read()
	require.ErrorIs(t, err, fs.ErrNotExist)

	records, err := store.ReadOrEmpty()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data", "power.jsonl"))

	// deliberately unsorted
	written := []vietlott.DrawRecord{
		record("100", "2026-01-14", 7, 8, 9),
		record("98", "2026-01-10", 1, 2, 3),
		record("99", "2026-01-12", 4, 5, 6),
	}
	require.NoError(t, store.Write(written))

	got, err := store.Read()
	require.NoError(t, err)

	want := []vietlott.DrawRecord{written[1], written[2], written[0]}
	require.Empty(t, cmp.Diff(want, got))
}

func TestReadSortsAndTypesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "max3d.jsonl")
	lines := `{"date":"2026-03-02","id":"512","result":["007","123"],"process_time":"2026-03-02T19:00:00+07:00"}
{"date":"2026-02-27","id":"511","result":["456","890"],"process_time":"2026-02-27T19:00:00+07:00"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	records, err := New(path).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "511", records[0].ID)
	require.Equal(t, "512", records[1].ID)
	require.Equal(t, []string{"456", "890"}, records[0].Result.Triplets)
	require.Equal(t, "2026-02-27", records[0].Date.String())
}

func TestMergeFiltersKnownIds(t *testing.T) {
	existing := []vietlott.DrawRecord{
		record("98", "2026-01-10", 1, 2, 3),
		record("99", "2026-01-12", 4, 5, 6),
	}
	fetched := []vietlott.DrawRecord{
		record("100", "2026-01-14", 7, 8, 9),
		// already stored, must not be duplicated even though the
		// crawl loop should have stopped before re-fetching it
		record("99", "2026-01-12", 4, 5, 6),
	}

	merged, added := Merge(existing, fetched)
	require.Equal(t, 1, added)
	require.Len(t, merged, 3)
	require.Equal(t, "98", merged[0].ID)
	require.Equal(t, "99", merged[1].ID)
	require.Equal(t, "100", merged[2].ID)
}

func TestMergeNothingNew(t *testing.T) {
	existing := []vietlott.DrawRecord{
		record("98", "2026-01-10", 1, 2, 3),
	}
	merged, added := Merge(existing, existing)
	require.Equal(t, 0, added)
	require.Empty(t, cmp.Diff(existing, merged))
}

func TestKnownIDs(t *testing.T) {
	ids := KnownIDs([]vietlott.DrawRecord{
		record("98", "2026-01-10", 1),
		record("99", "2026-01-12", 2),
	})
	require.Len(t, ids, 2)
	_, ok := ids["98"]
	require.True(t, ok)
}
