// Package memory holds the catalog in process memory after a single load.
package memory

import (
	"context"

	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/adapters/restcountries"
	"country_catalog/internal/domain"
)

// Store is immutable once constructed and safe for concurrent reads.
type Store struct {
	records []domain.Country
	byCode  map[string]int
}

// New indexes records by code; the first record wins on duplicate codes.
func New(records []domain.Country) *Store {
	idx := make(map[string]int, len(records))
	for i, c := range records {
		if _, dup := idx[c.Code]; dup {
			continue
		}
		idx[c.Code] = i
	}
	return &Store{records: records, byCode: idx}
}

// Load fetches and decodes the source document. Any failure is returned
// as a *domain.LoadError and no store is produced.
func Load(ctx context.Context, src domain.CatalogSource) (*Store, error) {
	doc, err := src.Fetch(ctx)
	if err != nil {
		return nil, &domain.LoadError{Source: src.Name(), Err: err}
	}
	records, err := restcountries.Decode(doc)
	if err != nil {
		return nil, &domain.LoadError{Source: src.Name(), Err: err}
	}
	s := New(records)
	observability.SetRecordsLoaded(len(records))
	return s, nil
}

// All returns the records in source order. Callers must not modify them.
func (s *Store) All() []domain.Country { return s.records }

func (s *Store) FindByCode(code string) (domain.Country, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return domain.Country{}, false
	}
	return s.records[i], true
}

func (s *Store) Len() int { return len(s.records) }
