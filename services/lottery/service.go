// Package lottery ties the vietlott scraper to the per-product draw
// stores: load persisted history, crawl backward from the latest
// draw until known territory, merge and rewrite.
package lottery

import (
	"context"
	"log/slog"
	"vietlott-backend/lib/drawstore"
	"vietlott-backend/lib/products"
	"vietlott-backend/lib/scrapers/vietlott"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/lottery")

// draws fetched per "page" of history
const drawsPerPage = 10

// Load reads a product's persisted history. The backing file must
// exist, a product that was never crawled is a configuration error.
func Load(cfg products.Config) ([]vietlott.DrawRecord, error) {
	records, err := drawstore.New(cfg.DataFile).Read()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		slog.Info(
			"loaded draw history",
			"product", cfg.Name,
			"records", len(records),
			"from", records[0].Date.String(),
			"to", records[len(records)-1].Date.String(),
		)
	}
	return records, nil
}

func LoadProduct(key string) ([]vietlott.DrawRecord, error) {
	cfg, err := products.Get(key)
	if err != nil {
		return nil, err
	}
	return Load(cfg)
}

// Update crawls draws newer than the stored history and merges them
// into the product's store. It returns the number of records added.
// A crawl cut short by a transport or parse failure still persists
// whatever prefix it fetched.
func Update(ctx context.Context, cfg products.Config, pages int) (int, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("product", cfg.Name))

	store := drawstore.New(cfg.DataFile)
	existing, err := store.ReadOrEmpty()
	if err != nil {
		return 0, err
	}
	known := drawstore.KnownIDs(existing)

	slog.InfoContext(
		ctx, "updating draw history",
		"product", cfg.Name,
		"existing", len(existing),
	)

	client := vietlott.NewClient(cfg)
	defer client.Close()

	fetched := client.Crawl(ctx, "", pages*drawsPerPage, known)
	if len(fetched) == 0 {
		slog.InfoContext(ctx, "no new draws crawled", "product", cfg.Name)
		return 0, nil
	}

	merged, added := drawstore.Merge(existing, fetched)
	if added == 0 {
		slog.InfoContext(ctx, "all crawled draws already stored", "product", cfg.Name)
		return 0, nil
	}

	if err := store.Write(merged); err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("added", added))
	slog.InfoContext(
		ctx, "draw history updated",
		"product", cfg.Name,
		"added", added,
		"file", store.Path(),
	)
	return added, nil
}

func UpdateProduct(ctx context.Context, key string, pages int) (int, error) {
	cfg, err := products.Get(key)
	if err != nil {
		return 0, err
	}
	return Update(ctx, cfg, pages)
}
