package restcountries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"country_catalog/internal/domain"
)

// record mirrors the REST Countries v3 JSON shape; only the fields the
// catalog serves are decoded.
type record struct {
	CCA2 string `json:"cca2"`
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Region      string                     `json:"region"`
	Capital     []string                   `json:"capital"`
	Area        *float64                   `json:"area"`
	Population  *float64                   `json:"population"`
	Flag        *string                    `json:"flag"`
	TLD         []string                   `json:"tld"`
	Independent *bool                      `json:"independent"`
	UNMember    *bool                      `json:"unMember"`
	Currencies  map[string]domain.Currency `json:"currencies"`
	IDD         *domain.Dialing            `json:"idd"`
	Languages   map[string]string          `json:"languages"`
}

func (r record) toDomain() domain.Country {
	c := domain.Country{
		Code:         r.CCA2,
		Name:         r.Name.Common,
		OfficialName: r.Name.Official,
		Region:       r.Region,
		Capitals:     r.Capital,
		Area:         r.Area,
		Flag:         r.Flag,
		TLDs:         r.TLD,
		Independent:  r.Independent,
		UNMember:     r.UNMember,
		Currencies:   r.Currencies,
		IDD:          r.IDD,
		Languages:    r.Languages,
	}
	// Values outside [0, MaxInt64) cannot be a population; treat them as absent.
	if p := r.Population; p != nil && *p >= 0 && *p < math.MaxInt64 {
		n := int64(*p)
		c.Population = &n
	}
	return c
}

var errNotArray = errors.New("catalog document is not a JSON array")

// Decode parses a whole catalog document, preserving element order.
func Decode(doc []byte) ([]domain.Country, error) {
	if !isArray(doc) {
		return nil, errNotArray
	}
	var rs []record
	if err := json.Unmarshal(doc, &rs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]domain.Country, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// Split breaks a document into raw elements without decoding them fully.
func Split(doc []byte) ([]domain.RawRecord, error) {
	if !isArray(doc) {
		return nil, errNotArray
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(doc, &elems); err != nil {
		return nil, fmt.Errorf("split catalog: %w", err)
	}
	out := make([]domain.RawRecord, 0, len(elems))
	for i, raw := range elems {
		out = append(out, domain.RawRecord{Position: i, Raw: raw})
	}
	return out, nil
}

// DecodeRecord decodes a single element and fills in rr.Code.
func DecodeRecord(rr *domain.RawRecord) (domain.Country, error) {
	var r record
	if err := json.Unmarshal(rr.Raw, &r); err != nil {
		return domain.Country{}, fmt.Errorf("record %d: %w", rr.Position, err)
	}
	rr.Code = r.CCA2
	return r.toDomain(), nil
}

// Join is the inverse of Split.
func Join(rs []domain.RawRecord) ([]byte, error) {
	elems := make([]json.RawMessage, 0, len(rs))
	for _, r := range rs {
		elems = append(elems, r.Raw)
	}
	return json.Marshal(elems)
}

func isArray(doc []byte) bool {
	t := bytes.TrimSpace(doc)
	return len(t) > 0 && t[0] == '['
}
