package domain

// Country is one catalog record as loaded from a source. Optional source
// fields stay nil so projections can tell "absent" from "zero".
type Country struct {
	Code         string
	Name         string
	OfficialName string
	Region       string
	Capitals     []string
	Area         *float64
	Population   *int64
	Flag         *string
	TLDs         []string
	Independent  *bool
	UNMember     *bool
	Currencies   map[string]Currency
	IDD          *Dialing
	Languages    map[string]string
}

type Currency struct {
	Name   string  `json:"name"`
	Symbol *string `json:"symbol,omitempty"`
}

// Dialing is the international direct dialing prefix of a country.
type Dialing struct {
	Root     string   `json:"root"`
	Suffixes []string `json:"suffixes"`
}

// NotAvailable is shown for textual summary fields the source left empty.
const NotAvailable = "N/A"

type SummaryView struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	OfficialName string  `json:"officialName"`
	Region       string  `json:"region"`
	Capital      string  `json:"capital"`
	Area         float64 `json:"area"`
	Population   int64   `json:"population"`
	Flag         string  `json:"flag"`
	TLD          string  `json:"tld"`
}

// DetailView extends the summary with fields copied verbatim from the
// record; absent ones encode as null.
type DetailView struct {
	SummaryView
	Independent          *bool               `json:"independent"`
	UNMember             *bool               `json:"unMember"`
	Currencies           map[string]Currency `json:"currencies"`
	InternationalDialing *Dialing            `json:"internationalDialing"`
	Languages            map[string]string   `json:"languages"`
}
