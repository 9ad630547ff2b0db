package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"country_catalog/internal/adapters/restcountries"
	"country_catalog/internal/domain"
)

// IngestionService copies a catalog document from a source into the
// stores the API can later load from. Either writer may be nil.
type IngestionService struct {
	src     domain.CatalogSource
	records domain.RecordWriter
	docs    domain.DocumentWriter
	workers int64
}

func NewIngestionService(src domain.CatalogSource, rw domain.RecordWriter, dw domain.DocumentWriter, workers int) *IngestionService {
	if workers <= 0 {
		workers = 1
	}
	return &IngestionService{src: src, records: rw, docs: dw, workers: int64(workers)}
}

type IngestReport struct {
	Total   int
	Skipped int
	Written int
	Failed  int
}

func (s *IngestionService) Ingest(ctx context.Context) (IngestReport, error) {
	var rep IngestReport

	doc, err := s.src.Fetch(ctx)
	if err != nil {
		return rep, fmt.Errorf("fetch %s: %w", s.src.Name(), err)
	}
	raw, err := restcountries.Split(doc)
	if err != nil {
		return rep, fmt.Errorf("split %s: %w", s.src.Name(), err)
	}
	rep.Total = len(raw)

	kept := s.selectRecords(raw)
	rep.Skipped = rep.Total - len(kept)

	if s.records != nil {
		written, failed, err := s.writeRecords(ctx, kept)
		rep.Written, rep.Failed = written, failed
		if err != nil {
			return rep, err
		}
		// Prune only after a complete write so a partial run never
		// shrinks the stored catalog.
		if failed == 0 {
			if err := s.records.DeleteExcept(ctx, codesOf(kept)); err != nil {
				return rep, fmt.Errorf("prune records: %w", err)
			}
		}
	}

	if s.docs != nil {
		joined, err := restcountries.Join(kept)
		if err != nil {
			return rep, fmt.Errorf("join records: %w", err)
		}
		if err := s.docs.PutDocument(ctx, joined); err != nil {
			return rep, fmt.Errorf("put document: %w", err)
		}
	}

	if rep.Failed > 0 {
		return rep, fmt.Errorf("%d of %d records failed to write", rep.Failed, len(kept))
	}
	return rep, nil
}

// selectRecords drops elements that do not decode, lack a code, or repeat
// an earlier code. Positions are renumbered so they stay dense.
func (s *IngestionService) selectRecords(raw []domain.RawRecord) []domain.RawRecord {
	seen := make(map[string]struct{}, len(raw))
	kept := make([]domain.RawRecord, 0, len(raw))
	for i := range raw {
		rr := raw[i]
		if _, err := restcountries.DecodeRecord(&rr); err != nil {
			log.Warn().Err(err).Int("position", rr.Position).Msg("skip undecodable record")
			continue
		}
		if rr.Code == "" {
			log.Warn().Int("position", rr.Position).Msg("skip record without code")
			continue
		}
		if _, dup := seen[rr.Code]; dup {
			log.Warn().Str("code", rr.Code).Int("position", rr.Position).Msg("skip duplicate code")
			continue
		}
		seen[rr.Code] = struct{}{}
		rr.Position = len(kept)
		kept = append(kept, rr)
	}
	return kept
}

func (s *IngestionService) writeRecords(ctx context.Context, rs []domain.RawRecord) (int, int, error) {
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	var written, failed int64

	for _, rr := range rs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return int(written), int(failed), fmt.Errorf("semaphore acquire: %w", err)
		}

		wg.Add(1)
		go func(rr domain.RawRecord) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.records.UpsertRecord(ctx, rr); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Warn().Str("code", rr.Code).Err(err).Msg("upsert failed")
				return
			}
			atomic.AddInt64(&written, 1)
		}(rr)
	}

	wg.Wait()
	return int(written), int(failed), nil
}

func codesOf(rs []domain.RawRecord) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Code)
	}
	return out
}
