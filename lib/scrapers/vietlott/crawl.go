package vietlott

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// Crawl walks draw results backward through history, starting at
// `start` (empty = latest draw), until it hits a draw whose id is in
// `existing`, runs out of backward links, fails a fetch, or exhausts
// `maxRecords`. Fetch and parse failures truncate the session, the
// prefix accumulated so far is returned either way since the next run
// resumes from the latest draw anyway. Records come back newest
// first.
func (c *Client) Crawl(ctx context.Context, start string, maxRecords int, existing map[string]struct{}) []DrawRecord {
	ctx, span := tracer.Start(ctx, "client:Crawl")
	defer span.End()

	var accumulated []DrawRecord
	cursor := start

	for i := 0; i < maxRecords; i++ {
		slog.InfoContext(
			ctx, "crawling draw",
			"product", c.config.Name,
			"cursor", cursorLabel(cursor),
		)

		record, err := c.FetchDraw(ctx, cursor)
		if err != nil {
			slog.WarnContext(
				ctx, "failed to fetch draw, stopping",
				"cursor", cursorLabel(cursor),
				"err", err,
			)
			break
		}

		if _, known := existing[record.ID]; known {
			slog.InfoContext(ctx, "draw already stored, stopping", "id", record.ID)
			break
		}

		prev := record.PrevID
		record.PrevID = ""
		accumulated = append(accumulated, *record)

		slog.DebugContext(
			ctx, "crawled draw",
			"id", record.ID,
			"date", record.Date.String(),
			"result", record.Result.String(),
		)

		if prev == "" {
			slog.InfoContext(ctx, "no previous draw link, stopping")
			break
		}
		cursor = prev
	}

	span.SetAttributes(attribute.Int("records", len(accumulated)))
	slog.InfoContext(
		ctx, "crawl finished",
		"product", c.config.Name,
		"records", len(accumulated),
	)
	return accumulated
}

func cursorLabel(cursor string) string {
	if cursor == "" {
		return "latest"
	}
	return cursor
}
