package service

import (
	"regexp"
	"strings"

	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
)

const (
	localCurrency     = "BDT"
	officialPriceNote = "official price"

	launchGroup        = "Launch"
	launchAnnouncedKey = "Announced"
	launchStatusKey    = "Status"
)

var expectedReleaseRe = regexp.MustCompile(`Exp\. release (.*)`)

// groupMapping drives the raw-to-canonical spec-group remap. Order matters
// only for key collisions across merged sources: the later source wins.
var groupMapping = []struct {
	sources []string
	assign  func(record *domain.CanonicalRecord, group domain.SpecGroup)
}{
	{[]string{"Main camera", "Selfie camera"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Camera = g }},
	{[]string{"Body"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Design = g }},
	{[]string{"Battery"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Battery = g }},
	{[]string{"Display"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Display = g }},
	{[]string{"Network"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Cellular = g }},
	{[]string{"Platform", "Memory"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Hardware = g }},
	{[]string{"Sound"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Multimedia = g }},
	{[]string{"Connectivity", "Features"}, func(r *domain.CanonicalRecord, g domain.SpecGroup) { r.Connectivity = g }},
}

// Normalize maps a RawRecord to its canonical persisted shape. It is pure
// and total: any RawRecord, including the zero value, normalizes without
// error, with missing fields resolving to their documented defaults.
func Normalize(raw *domain.RawRecord) *domain.CanonicalRecord {
	if raw == nil {
		raw = &domain.RawRecord{}
	}

	record := &domain.CanonicalRecord{
		Title:    scalarOrDefault(raw.Title),
		Brand:    scalarOrDefault(raw.Brand),
		Category: scalarOrDefault(raw.Category),
		AddedOn:  scalarOrDefault(raw.AddedOn),
		Status:   scalarOrDefault(raw.Status),
	}

	launch := raw.Group(launchGroup)
	if announced, ok := launch[launchAnnouncedKey]; ok {
		record.AnnouncedDate = announced
	} else {
		record.AnnouncedDate = domain.DefaultValue
	}
	record.ExpectedRelease = expectedRelease(launch[launchStatusKey], record.AnnouncedDate)

	amount := parsePriceAmount(raw.PriceAmount)
	record.Price = domain.Price{
		LocalCurrency: localCurrency,
		Amount:        amount,
	}
	if amount > 0 {
		record.Price.Note = officialPriceNote
	}

	for _, mapping := range groupMapping {
		group := domain.SpecGroup{}
		for _, source := range mapping.sources {
			for key, value := range raw.Group(source) {
				group[key+":"] = value
			}
		}
		mapping.assign(record, group)
	}

	return record
}

// expectedRelease captures the suffix of "Exp. release <text>" from the raw
// launch status; without a match it falls back to the announced date.
func expectedRelease(status, announced string) string {
	if match := expectedReleaseRe.FindStringSubmatch(status); match != nil {
		return strings.TrimSpace(match[1])
	}
	return announced
}

// parsePriceAmount accumulates the decimal digits of the raw price text and
// ignores everything else; text with no digits parses as zero. Price pages
// mix ASCII and Bengali numerals, so digit detection is per-rune rather than
// a [0-9] class.
func parsePriceAmount(raw string) int {
	amount := 0
	for _, r := range raw {
		d, ok := digitValue(r)
		if !ok {
			continue
		}
		amount = amount*10 + d
	}
	return amount
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= '০' && r <= '৯':
		return int(r - '০'), true
	}
	return 0, false
}

func scalarOrDefault(value string) string {
	if value == "" {
		return domain.DefaultValue
	}
	return value
}
