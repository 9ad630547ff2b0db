package app

import (
	"strings"

	"golang.org/x/text/cases"

	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/domain"
)

type QueryService struct {
	catalog domain.Catalog
}

func NewQueryService(c domain.Catalog) *QueryService {
	return &QueryService{catalog: c}
}

// List returns the summaries of every record matching all present criteria,
// in catalog order. It never fails; no match is an empty, non-nil slice.
func (s *QueryService) List(c domain.Criteria) []domain.SummaryView {
	match := newMatcher(c)
	out := make([]domain.SummaryView, 0)
	for _, rec := range s.catalog.All() {
		if match(rec) {
			out = append(out, toSummary(rec))
		}
	}
	observability.ObserveQueryResults(len(out))
	return out
}

// Detail returns domain.ErrNotFound when no record carries code.
func (s *QueryService) Detail(code string) (domain.DetailView, error) {
	rec, ok := s.catalog.FindByCode(code)
	if !ok {
		return domain.DetailView{}, domain.ErrNotFound
	}
	return toDetail(rec), nil
}

type predicate func(domain.Country) bool

// newMatcher builds the conjunction of the present filters in the order
// search, population bounds, area bounds, region.
func newMatcher(c domain.Criteria) predicate {
	var ps []predicate

	if c.Search != "" {
		// A Caser is stateful, so each query gets its own.
		fold := cases.Fold()
		needle := fold.String(c.Search)
		ps = append(ps, func(r domain.Country) bool {
			return strings.Contains(fold.String(r.Name), needle) ||
				strings.Contains(fold.String(r.OfficialName), needle)
		})
	}
	if c.MinPopulation != nil {
		lo := *c.MinPopulation
		ps = append(ps, func(r domain.Country) bool { return r.Population != nil && *r.Population >= lo })
	}
	if c.MaxPopulation != nil {
		hi := *c.MaxPopulation
		ps = append(ps, func(r domain.Country) bool { return r.Population != nil && *r.Population <= hi })
	}
	if c.MinArea != nil {
		lo := float64(*c.MinArea)
		ps = append(ps, func(r domain.Country) bool { return r.Area != nil && *r.Area >= lo })
	}
	if c.MaxArea != nil {
		hi := float64(*c.MaxArea)
		ps = append(ps, func(r domain.Country) bool { return r.Area != nil && *r.Area <= hi })
	}
	if c.Region != "" {
		region := c.Region
		ps = append(ps, func(r domain.Country) bool { return r.Region == region })
	}

	return func(r domain.Country) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
