package lottery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"vietlott-backend/lib/drawstore"
	"vietlott-backend/lib/products"
	"vietlott-backend/lib/scrapers/vietlott"
	"vietlott-backend/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newFakeDrawServer(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req struct {
			DrawId string `json:"DrawId"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fragment, ok := pages[req.DrawId]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": map[string]string{"RetExtraParam1": fragment},
		})
	}))
}

func drawPage(id, date string, numbers []int, prev string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h5>Kỳ quay thưởng <b>#%s</b> ngày <b>%s</b></h5>`, id, date)
	b.WriteString(`<div class="day_so_ket_qua_v2">`)
	for _, n := range numbers {
		fmt.Fprintf(&b, `<span class="bong_tron">%02d</span>`, n)
	}
	b.WriteString(`</div>`)
	if prev != "" {
		fmt.Fprintf(&b, `<a class="btn_chuyendulieu_left" href="javascript:ClientDrawResult('%s')"></a>`, prev)
	}
	return b.String()
}

// "100" -> "99" -> "98", "98" has no backward link
func threeDrawChain() map[string]string {
	return map[string]string{
		"":   drawPage("100", "14/01/2026", []int{7, 8, 9}, "99"),
		"99": drawPage("99", "12/01/2026", []int{4, 5, 6}, "98"),
		"98": drawPage("98", "10/01/2026", []int{1, 2, 3}, ""),
	}
}

func testConfig(t testing.TB, url string) products.Config {
	return products.Config{
		Name:      "power_test",
		MinValue:  1,
		MaxValue:  35,
		PickCount: 3,
		DataFile:  filepath.Join(t.TempDir(), "power_test.jsonl"),
		URL:       url,
		SMSCode:   "TEST",
		Shape:     products.ShapeNumeric,
	}
}

func storedRecord(id, date string, numbers ...int) vietlott.DrawRecord {
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

func TestUpdateEmptyStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/lottery")
	defer cleanup()

	server := newFakeDrawServer(threeDrawChain())
	defer server.Close()
	cfg := testConfig(t, server.URL)

	added, err := Update(context.Background(), cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	records, err := Load(cfg)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// ascending by date
	require.Equal(t, "98", records[0].ID)
	require.Equal(t, "99", records[1].ID)
	require.Equal(t, "100", records[2].ID)
	for i := 1; i < len(records); i++ {
		require.True(t, records[i-1].Date.Before(records[i].Date.Time))
	}
}

func TestUpdateIncremental(t *testing.T) {
	pages := map[string]string{
		"":    drawPage("101", "16/01/2026", []int{10, 11, 12}, "100"),
		"100": drawPage("100", "14/01/2026", []int{7, 8, 9}, "99"),
	}
	server := newFakeDrawServer(pages)
	defer server.Close()
	cfg := testConfig(t, server.URL)

	err := drawstore.New(cfg.DataFile).Write([]vietlott.DrawRecord{
		storedRecord("98", "2026-01-10", 1, 2, 3),
		storedRecord("99", "2026-01-12", 4, 5, 6),
		storedRecord("100", "2026-01-14", 7, 8, 9),
	})
	require.NoError(t, err)

	added, err := Update(context.Background(), cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	records, err := Load(cfg)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, "101", records[3].ID)
}

func TestUpdateIdempotent(t *testing.T) {
	server := newFakeDrawServer(threeDrawChain())
	defer server.Close()
	cfg := testConfig(t, server.URL)

	added, err := Update(context.Background(), cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	before, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	firstLoad, err := Load(cfg)
	require.NoError(t, err)

	added, err = Update(context.Background(), cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 0, added)

	after, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	require.Equal(t, before, after)

	secondLoad, err := Load(cfg)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(firstLoad, secondLoad))
}

func TestUpdatePersistsPrefixOnFailure(t *testing.T) {
	// the chain dead-ends at "100" with a server error
	pages := map[string]string{
		"": drawPage("101", "16/01/2026", []int{10, 11, 12}, "100"),
	}
	server := newFakeDrawServer(pages)
	defer server.Close()
	cfg := testConfig(t, server.URL)

	added, err := Update(context.Background(), cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	records, err := Load(cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "101", records[0].ID)
}

func TestUpdateUnknownProduct(t *testing.T) {
	_, err := UpdateProduct(context.Background(), "bogus", 1)
	require.ErrorIs(t, err, products.ErrUnknownProduct)
}

func TestLoadMissingStore(t *testing.T) {
	cfg := products.Config{
		Name:     "power_test",
		DataFile: filepath.Join(t.TempDir(), "never_crawled.jsonl"),
	}
	_, err := Load(cfg)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = LoadProduct("bogus")
	require.ErrorIs(t, err, products.ErrUnknownProduct)
}
