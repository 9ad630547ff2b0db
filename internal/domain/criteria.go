package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Criteria narrows a list query. Every nil/empty field means "no
// constraint on this dimension"; present fields are ANDed.
type Criteria struct {
	Search        string
	MinPopulation *int64
	MaxPopulation *int64
	MinArea       *int64
	MaxArea       *int64
	Region        string
}

// Query parameter names accepted by ParseCriteria.
const (
	ParamSearch        = "search"
	ParamMinPopulation = "minPopulation"
	ParamMaxPopulation = "maxPopulation"
	ParamMinArea       = "minArea"
	ParamMaxArea       = "maxArea"
	ParamRegion        = "region"
)

// ParseCriteria reads criteria from query parameters. Numeric values that
// do not parse as base-10 integers are dropped rather than rejected.
func ParseCriteria(q url.Values) Criteria {
	return Criteria{
		Search:        q.Get(ParamSearch),
		MinPopulation: parseBound(q.Get(ParamMinPopulation)),
		MaxPopulation: parseBound(q.Get(ParamMaxPopulation)),
		MinArea:       parseBound(q.Get(ParamMinArea)),
		MaxArea:       parseBound(q.Get(ParamMaxArea)),
		Region:        q.Get(ParamRegion),
	}
}

func parseBound(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// IsEmpty reports whether no dimension is constrained.
func (c Criteria) IsEmpty() bool {
	return c.Search == "" && c.Region == "" &&
		c.MinPopulation == nil && c.MaxPopulation == nil &&
		c.MinArea == nil && c.MaxArea == nil
}
