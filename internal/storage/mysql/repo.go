package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/adapters/restcountries"
	"country_catalog/internal/domain"
)

// Repo stores one row per catalog record. It is a record sink for the
// ingestor and a catalog source for the API.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Name() string { return "mysql:countries" }

func (r *Repo) UpsertRecord(ctx context.Context, rec domain.RawRecord) error {
	_, err := r.db.ExecContext(ctx, upsertCountrySQL, rec.Code, rec.Position, string(rec.Raw))
	if err != nil {
		observability.ObserveStore("mysql", "error")
		return fmt.Errorf("upsert %s: %w", rec.Code, err)
	}
	observability.ObserveStore("mysql", "write")
	return nil
}

func (r *Repo) DeleteExcept(ctx context.Context, keep []string) error {
	q := deleteAllCountriesSQL
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		q = deleteCountriesNotInPrefix + strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",") + ")"
		for _, c := range keep {
			args = append(args, c)
		}
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		observability.ObserveStore("mysql", "error")
		return fmt.Errorf("prune countries: %w", err)
	}
	observability.ObserveStore("mysql", "write")
	return nil
}

// Fetch reassembles the stored rows into a catalog document.
func (r *Repo) Fetch(ctx context.Context) ([]byte, error) {
	rows, err := r.db.QueryContext(ctx, listCountriesSQL)
	if err != nil {
		observability.ObserveStore("mysql", "error")
		return nil, err
	}
	defer rows.Close()

	var recs []domain.RawRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		recs = append(recs, domain.RawRecord{Position: len(recs), Raw: json.RawMessage(raw)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	observability.ObserveStore("mysql", "read")
	return restcountries.Join(recs)
}
