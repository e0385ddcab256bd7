package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"folio-backend/internal/domain"
)

// Store persists the portfolio collection as a whole. Every save rewrites the
// full ordered list; there is no delta persistence. Implementations must
// return (nil, nil) from Load when nothing has been persisted yet.
type Store interface {
	Load(ctx context.Context) ([]domain.Holding, error)
	Save(ctx context.Context, holdings []domain.Holding) error
}

// SchemaVersion is the current persisted document version.
const SchemaVersion = 1

// document is the on-disk/in-row payload: a version tag wrapping the list.
type document struct {
	Version  int              `json:"version"`
	Holdings []domain.Holding `json:"holdings"`
}

// Encode serializes holdings into the current versioned document format.
func Encode(holdings []domain.Holding) ([]byte, error) {
	if holdings == nil {
		holdings = []domain.Holding{}
	}
	return json.Marshal(document{Version: SchemaVersion, Holdings: holdings})
}

// Decode parses a persisted payload, migrating legacy formats forward.
// Version 0 payloads (a bare JSON array, written before the version tag
// existed) are accepted and upgraded in place on the next save. Payloads
// newer than SchemaVersion are rejected.
func Decode(data []byte) ([]domain.Holding, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var legacy []domain.Holding
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("parse legacy portfolio payload: %w", err)
		}
		return legacy, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse portfolio payload: %w", err)
	}
	if doc.Version > SchemaVersion {
		return nil, fmt.Errorf("portfolio payload version %d is newer than supported version %d", doc.Version, SchemaVersion)
	}
	return doc.Holdings, nil
}
