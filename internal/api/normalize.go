package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// The backend serves MongoDB documents, so records arrive with a `_id` field
// and occasionally numeric legacy ids. Normalization happens here, at the
// decode boundary, so the rest of the client only ever sees a string `id`.

// normalizeRecord patches a decoded JSON object in place: `_id` becomes `id`
// when `id` is absent, and a numeric `id` is coerced to its string form.
func normalizeRecord(record map[string]any) {
	if _, ok := record["id"]; !ok {
		if mongoID, ok := record["_id"]; ok {
			record["id"] = mongoID
		}
	}
	delete(record, "_id")

	switch id := record["id"].(type) {
	case float64:
		// JSON numbers decode as float64; legacy ids are integers.
		record["id"] = strconv.FormatInt(int64(id), 10)
	case json.Number:
		record["id"] = id.String()
	}
}

// decodeRecord decodes one backend document into T, normalizing its id.
func decodeRecord[T any](raw json.RawMessage) (T, error) {
	var out T

	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return out, fmt.Errorf("failed to decode record: %w", err)
	}
	normalizeRecord(record)

	patched, err := json.Marshal(record)
	if err != nil {
		return out, fmt.Errorf("failed to re-encode record: %w", err)
	}
	if err := json.Unmarshal(patched, &out); err != nil {
		return out, fmt.Errorf("failed to decode record: %w", err)
	}
	return out, nil
}

// decodeRecords decodes a backend document array into []T.
func decodeRecords[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		item, err := decodeRecord[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// getRecord fetches one document from an authenticated endpoint and returns
// it normalized.
func getRecord[T any](ctx context.Context, c *Client, path string) (T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, "GET", path, nil, &raw); err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](raw)
}

// getRecords fetches a document list from an authenticated endpoint and
// returns it normalized.
func getRecords[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw []json.RawMessage
	if err := c.Do(ctx, "GET", path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeRecords[T](raw)
}

// sendRecord issues a write (POST, PUT, PATCH) and decodes the document the
// backend echoes back.
func sendRecord[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, method, path, body, &raw); err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](raw)
}
