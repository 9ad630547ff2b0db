package domain

import (
	"context"
	"encoding/json"
)

// CatalogSource yields the catalog document: a JSON array of records in
// REST Countries v3 shape.
type CatalogSource interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// Catalog is the read side the query service needs.
type Catalog interface {
	All() []Country
	FindByCode(code string) (Country, bool)
}

// RawRecord is one undecoded catalog element kept with its position in
// the source document.
type RawRecord struct {
	Position int
	Code     string
	Raw      json.RawMessage
}

// RecordWriter persists records one at a time (UpsertRecord is safe for
// concurrent use). DeleteExcept drops every stored record whose code is
// not in keep, so the store mirrors the last ingested document.
type RecordWriter interface {
	UpsertRecord(ctx context.Context, r RawRecord) error
	DeleteExcept(ctx context.Context, keep []string) error
}

// DocumentWriter replaces a whole catalog document at once.
type DocumentWriter interface {
	PutDocument(ctx context.Context, doc []byte) error
}
