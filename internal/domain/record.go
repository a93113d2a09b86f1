package domain

// Field defaults used across extraction and normalization. A field that the
// detail page simply does not show gets DefaultText at extraction time; a
// field missing from a RawRecord entirely resolves to DefaultValue when the
// record is normalized.
const (
	DefaultText  = "Not available"
	DefaultValue = "N/A"
)

// RawRecord is the loosely-typed field set extracted from one detail page,
// before any canonicalization. Scalars that could not be read carry
// DefaultText; ImageURL and PriceAmount are empty when absent.
type RawRecord struct {
	Title       string
	Brand       string
	Category    string
	AddedOn     string
	Status      string
	ImageURL    string
	PriceAmount string

	// Groups maps a cleaned spec-group title (e.g. "Display", "Main camera")
	// to its attribute rows. Duplicate group titles and duplicate row keys
	// are last-write-wins.
	Groups map[string]map[string]string
}

// Group returns the named spec group, or nil when the page had none.
func (r *RawRecord) Group(title string) map[string]string {
	if r == nil || r.Groups == nil {
		return nil
	}
	return r.Groups[title]
}

// Price is the normalized price block. Amount is the digit-only integer
// parsed from the raw price text.
type Price struct {
	LocalCurrency string `json:"local_currency"`
	Amount        int    `json:"amount"`
	Note          string `json:"note"`
}

// SpecGroup holds the remapped attribute rows of one canonical group. Keys
// carry a literal trailing colon, matching the persisted artifact shape.
type SpecGroup map[string]string

// CanonicalRecord is the persisted output shape for one product. Field order
// here is the serialization order of the JSON artifact.
type CanonicalRecord struct {
	Title           string    `json:"title"`
	Brand           string    `json:"brand"`
	Category        string    `json:"category"`
	AddedOn         string    `json:"added_on"`
	Status          string    `json:"status"`
	AnnouncedDate   string    `json:"announced_date"`
	ExpectedRelease string    `json:"expected_release"`
	Price           Price     `json:"price"`
	Camera          SpecGroup `json:"Camera"`
	Design          SpecGroup `json:"Design"`
	Battery         SpecGroup `json:"Battery"`
	Display         SpecGroup `json:"Display"`
	Cellular        SpecGroup `json:"Cellular"`
	Hardware        SpecGroup `json:"Hardware"`
	Multimedia      SpecGroup `json:"Multimedia"`
	Connectivity    SpecGroup `json:"Connectivity & Features"`
}

// LedgerEntry marks one product link as processed. URL is the natural key;
// DisplayName is kept for the ledger file's readability only.
type LedgerEntry struct {
	DisplayName string
	URL         string
}
