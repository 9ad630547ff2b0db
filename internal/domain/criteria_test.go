package domain_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country_catalog/internal/domain"
)

func TestParseCriteria(t *testing.T) {
	c := domain.ParseCriteria(url.Values{
		"search":        {"united"},
		"minPopulation": {" 1000 "},
		"maxPopulation": {"1e6"},
		"minArea":       {"-5"},
		"maxArea":       {""},
		"region":        {"Europe"},
	})

	assert.Equal(t, "united", c.Search)
	require.NotNil(t, c.MinPopulation)
	assert.Equal(t, int64(1000), *c.MinPopulation)
	assert.Nil(t, c.MaxPopulation, "non-integer values are dropped")
	require.NotNil(t, c.MinArea)
	assert.Equal(t, int64(-5), *c.MinArea)
	assert.Nil(t, c.MaxArea)
	assert.Equal(t, "Europe", c.Region)
	assert.False(t, c.IsEmpty())
}

func TestParseCriteria_Empty(t *testing.T) {
	assert.True(t, domain.ParseCriteria(url.Values{}).IsEmpty())
	assert.True(t, domain.ParseCriteria(url.Values{"minArea": {"big"}, "search": {""}}).IsEmpty())
}

func TestLoadError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	var err error = &domain.LoadError{Source: "file:countries.json", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "load catalog from file:countries.json: unexpected EOF", err.Error())
}
