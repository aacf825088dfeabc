package search

import (
	"context"

	algoliasearch "github.com/algolia/algoliasearch-client-go/v3/algolia/search"

	"depanku-backend/internal/config"
	"depanku-backend/internal/logger"
)

// deleteBatchSize bounds bulk operations to respect backend limits.
const deleteBatchSize = 500

// Client is the synchronous search-index interface. Operations never return
// errors for service-unavailable conditions; they report success as a boolean
// or count and log the failure, so an index outage cannot block primary-store
// writes.
type Client interface {
	Upsert(ctx context.Context, records []Record) bool
	Delete(ctx context.Context, ids []string) bool
	ResyncAll(ctx context.Context, records []Record) int
	Clear(ctx context.Context) bool
}

// AlgoliaClient adapts the Algolia API behind the Client interface. It tries
// the rich client first (bridged through BlockingCall) and falls back to a
// raw HTTP batch call per operation; a permanent failure is reported only
// when both transports fail.
type AlgoliaClient struct {
	index     *algoliasearch.Index
	fallback  *fallbackTransport
	indexName string

	// forceFallback short-circuits the rich client for environments where it
	// is known not to work; the raw transport is used directly.
	forceFallback bool
}

// NewAlgoliaClient builds the index client. Missing credentials produce a
// client whose operations all fail soft with a warning, matching the policy
// for every other collaborator outage.
func NewAlgoliaClient(cfg config.SearchConfig) *AlgoliaClient {
	c := &AlgoliaClient{
		indexName:     cfg.IndexName,
		forceFallback: cfg.ForceFallback,
	}
	if cfg.AppID == "" || cfg.AdminAPIKey == "" {
		logger.Warn("Search index credentials not configured, index sync disabled")
		return c
	}
	c.index = algoliasearch.NewClient(cfg.AppID, cfg.AdminAPIKey).InitIndex(cfg.IndexName)
	c.fallback = newFallbackTransport(cfg.AppID, cfg.AdminAPIKey, cfg.IndexName)
	return c
}

func (c *AlgoliaClient) configured() bool {
	return c.fallback != nil
}

// Upsert cleans and writes records to the index.
func (c *AlgoliaClient) Upsert(ctx context.Context, records []Record) bool {
	if !c.configured() || len(records) == 0 {
		return false
	}

	cleaned := make([]Record, 0, len(records))
	for _, rec := range records {
		cleaned = append(cleaned, Clean(rec))
	}

	if !c.forceFallback {
		err := BlockingCall(func() error {
			_, err := c.index.SaveObjects(cleaned)
			return err
		}, DefaultCallTimeout)
		if err == nil {
			logger.Info("Saved records to search index", "count", len(cleaned))
			return true
		}
		logger.Warn("Search index save failed, trying raw HTTP fallback", "error", err)
	}

	if err := c.fallback.saveObjects(ctx, cleaned); err != nil {
		logger.Error("Search index fallback save failed", "error", err, "count", len(cleaned))
		return false
	}
	logger.Info("Saved records to search index (fallback)", "count", len(cleaned))
	return true
}

// Delete removes ids from the index, batching to respect backend limits.
// Already-committed batches are kept even when a later batch fails.
func (c *AlgoliaClient) Delete(ctx context.Context, ids []string) bool {
	if !c.configured() || len(ids) == 0 {
		return false
	}

	ok := true
	for _, batch := range chunkStrings(ids, deleteBatchSize) {
		if !c.deleteBatch(ctx, batch) {
			ok = false
		}
	}
	return ok
}

func (c *AlgoliaClient) deleteBatch(ctx context.Context, ids []string) bool {
	if !c.forceFallback {
		err := BlockingCall(func() error {
			_, err := c.index.DeleteObjects(ids)
			return err
		}, DefaultCallTimeout)
		if err == nil {
			logger.Info("Deleted records from search index", "count", len(ids))
			return true
		}
		logger.Warn("Search index delete failed, trying raw HTTP fallback", "error", err)
	}

	if err := c.fallback.deleteObjects(ctx, ids); err != nil {
		logger.Error("Search index fallback delete failed", "error", err, "count", len(ids))
		return false
	}
	logger.Info("Deleted records from search index (fallback)", "count", len(ids))
	return true
}

// ResyncAll pushes the full published set to the index in bounded batches
// and returns how many records were committed.
func (c *AlgoliaClient) ResyncAll(ctx context.Context, records []Record) int {
	if !c.configured() || len(records) == 0 {
		return 0
	}

	count := 0
	for _, batch := range chunkRecords(records, deleteBatchSize) {
		if c.Upsert(ctx, batch) {
			count += len(batch)
		}
	}
	logger.Info("Search index resync finished", "synced", count, "total", len(records))
	return count
}

// Clear removes every record from the index.
func (c *AlgoliaClient) Clear(ctx context.Context) bool {
	if !c.configured() {
		return false
	}

	if !c.forceFallback {
		err := BlockingCall(func() error {
			_, err := c.index.ClearObjects()
			return err
		}, DefaultCallTimeout)
		if err == nil {
			logger.Info("Cleared search index", "index", c.indexName)
			return true
		}
		logger.Warn("Search index clear failed, trying raw HTTP fallback", "error", err)
	}

	if err := c.fallback.clearIndex(ctx); err != nil {
		logger.Error("Search index fallback clear failed", "error", err)
		return false
	}
	logger.Info("Cleared search index (fallback)", "index", c.indexName)
	return true
}

func chunkRecords(records []Record, size int) [][]Record {
	var chunks [][]Record
	for len(records) > size {
		chunks = append(chunks, records[:size])
		records = records[size:]
	}
	return append(chunks, records)
}

func chunkStrings(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	return append(chunks, ids)
}
