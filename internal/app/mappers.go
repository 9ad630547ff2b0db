package app

import "country_catalog/internal/domain"

func toSummary(c domain.Country) domain.SummaryView {
	v := domain.SummaryView{
		Code:         c.Code,
		Name:         c.Name,
		OfficialName: c.OfficialName,
		Region:       c.Region,
		Capital:      firstOr(c.Capitals, domain.NotAvailable),
		Flag:         domain.NotAvailable,
		TLD:          firstOr(c.TLDs, domain.NotAvailable),
	}
	if c.Area != nil {
		v.Area = *c.Area
	}
	if c.Population != nil {
		v.Population = *c.Population
	}
	if c.Flag != nil && *c.Flag != "" {
		v.Flag = *c.Flag
	}
	return v
}

// toDetail reuses the summary projection unchanged; the extra fields are
// passed through without defaulting.
func toDetail(c domain.Country) domain.DetailView {
	return domain.DetailView{
		SummaryView:          toSummary(c),
		Independent:          c.Independent,
		UNMember:             c.UNMember,
		Currencies:           c.Currencies,
		InternationalDialing: c.IDD,
		Languages:            c.Languages,
	}
}

// firstOr returns the first element when it is non-empty.
func firstOr(xs []string, def string) string {
	if len(xs) == 0 || xs[0] == "" {
		return def
	}
	return xs[0]
}
