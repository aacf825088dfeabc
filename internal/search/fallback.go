package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// fallbackTransport is the minimal raw-HTTP tier under the rich client. It
// speaks the index's batch protocol directly so a broken client library or
// environment still gets records through.
type fallbackTransport struct {
	appID     string
	apiKey    string
	indexName string
	baseURL   string
	client    *http.Client
}

func newFallbackTransport(appID, apiKey, indexName string) *fallbackTransport {
	return &fallbackTransport{
		appID:     appID,
		apiKey:    apiKey,
		indexName: indexName,
		baseURL:   fmt.Sprintf("https://%s-dsn.algolia.net", appID),
		client:    &http.Client{Timeout: DefaultCallTimeout},
	}
}

type batchOperation struct {
	Action string      `json:"action"`
	Body   interface{} `json:"body"`
}

type batchRequest struct {
	Requests []batchOperation `json:"requests"`
}

func (t *fallbackTransport) saveObjects(ctx context.Context, records []Record) error {
	ops := make([]batchOperation, 0, len(records))
	for _, rec := range records {
		ops = append(ops, batchOperation{Action: "addObject", Body: rec})
	}
	return t.postBatch(ctx, ops)
}

func (t *fallbackTransport) deleteObjects(ctx context.Context, ids []string) error {
	ops := make([]batchOperation, 0, len(ids))
	for _, id := range ids {
		ops = append(ops, batchOperation{Action: "deleteObject", Body: map[string]string{"objectID": id}})
	}
	return t.postBatch(ctx, ops)
}

func (t *fallbackTransport) postBatch(ctx context.Context, ops []batchOperation) error {
	url := fmt.Sprintf("%s/1/indexes/%s/batch", t.baseURL, t.indexName)
	return t.post(ctx, url, batchRequest{Requests: ops})
}

func (t *fallbackTransport) clearIndex(ctx context.Context) error {
	url := fmt.Sprintf("%s/1/indexes/%s/clear", t.baseURL, t.indexName)
	return t.post(ctx, url, nil)
}

func (t *fallbackTransport) post(ctx context.Context, url string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode batch payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-Algolia-API-Key", t.apiKey)
	req.Header.Set("X-Algolia-Application-Id", t.appID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("index batch call returned status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
