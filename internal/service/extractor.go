package service

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
	"github.com/rkarim/mobiledokan-scraper-go/internal/util"
	"go.uber.org/zap"
)

// Detail-page selectors. The site renders every product through the same
// "aps" spec-sheet widget, so these are stable across categories.
// selectorListingLinks enumerates every catalog item on the listing page.
const selectorListingLinks = "ul.aps-products li .aps-product-thumb a"

const (
	selectorTitle      = "h1.aps-main-title"
	selectorBrand      = ".aps-product-brand a"
	selectorCategory   = ".aps-product-cat a"
	selectorAddedOn    = ".aps-product-added"
	selectorPrice      = ".aps-product-price .aps-price-value"
	selectorStatus     = ".aps-status span"
	selectorImage      = ".aps-main-image img.aps-image-zoom"
	selectorSpecGroups = "div#aps-specs .aps-group"
	selectorGroupTitle = "h3.aps-group-title"
	selectorGroupRows  = "table tr"
	selectorRowKey     = "td.aps-attr-title strong.aps-term"
	selectorRowValue   = "td.aps-attr-value"

	iconCancelMarker = "aps-icon-cancel"
	iconCheckMarker  = "aps-icon-check"

	addedOnPrefix = "Added on:"
)

// trailing run of symbols after a group heading, e.g. "Display ─" -> "Display"
var groupTitleJunk = regexp.MustCompile(`\s+[^\w\s]+$`)

// Extractor pulls a RawRecord out of a loaded detail-page document. Missing
// optional fields never fail extraction; each read falls back to its
// documented default.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract reads every raw field from the document. It is total: a document
// with none of the expected markup yields a RawRecord of defaults.
func (e *Extractor) Extract(doc *goquery.Document) *domain.RawRecord {
	record := &domain.RawRecord{
		Title:       textOrDefault(doc.Find(selectorTitle), domain.DefaultText),
		Brand:       textOrDefault(doc.Find(selectorBrand), domain.DefaultText),
		Category:    textOrDefault(doc.Find(selectorCategory), domain.DefaultText),
		Status:      textOrDefault(doc.Find(selectorStatus), domain.DefaultText),
		PriceAmount: textOrDefault(doc.Find(selectorPrice), domain.DefaultText),
		Groups:      make(map[string]map[string]string),
	}

	addedOn := textOrDefault(doc.Find(selectorAddedOn), domain.DefaultText)
	record.AddedOn = strings.TrimSpace(strings.TrimPrefix(addedOn, addedOnPrefix))

	if src, ok := doc.Find(selectorImage).Attr("src"); ok {
		record.ImageURL = src
	}

	doc.Find(selectorSpecGroups).Each(func(_ int, group *goquery.Selection) {
		title := cleanGroupTitle(textOrDefault(group.Find(selectorGroupTitle), domain.DefaultText))
		if title == "" {
			return
		}

		rows := make(map[string]string)
		group.Find(selectorGroupRows).Each(func(_ int, row *goquery.Selection) {
			key, value, ok := extractRow(row)
			if !ok {
				return
			}
			rows[key] = value
		})

		// repeated group titles are last-write-wins
		record.Groups[title] = rows
	})

	e.logger.Debug("Raw record extracted",
		zap.String("title", record.Title),
		zap.Int("groups", len(record.Groups)))

	return record
}

// ListingLinks collects the product links found on the listing page.
// Duplicates and anchors without an href are dropped; ordering is the
// document order and carries no meaning.
func ListingLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	links := make([]string, 0)
	doc.Find(selectorListingLinks).Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}

// extractRow reads one spec-table row. Rows without a usable key or value
// are dropped.
func extractRow(row *goquery.Selection) (key, value string, ok bool) {
	keySel := row.Find(selectorRowKey)
	if keySel.Length() == 0 {
		return "", "", false
	}
	key = util.TrimTrailingColon(keySel.First().Text())
	if key == "" {
		return "", "", false
	}

	valueSel := row.Find(selectorRowValue)
	if valueSel.Length() == 0 {
		return "", "", false
	}

	// Boolean cells render as icons; their presence decides the value
	// regardless of any cell text.
	html, _ := valueSel.First().Html()
	switch {
	case strings.Contains(html, iconCancelMarker):
		return key, "No", true
	case strings.Contains(html, iconCheckMarker):
		return key, "Yes", true
	}

	value = util.CollapseLines(valueSel.First().Text())
	if value == "" {
		return "", "", false
	}
	return key, value, true
}

// cleanGroupTitle strips the decorative trailing symbol run from a group
// heading. An empty result means the group is unnamed and gets dropped.
func cleanGroupTitle(raw string) string {
	return strings.TrimSpace(groupTitleJunk.ReplaceAllString(raw, ""))
}

// textOrDefault returns the trimmed text of the first match, or def when the
// selection is empty.
func textOrDefault(sel *goquery.Selection, def string) string {
	if sel.Length() == 0 {
		return def
	}
	return strings.TrimSpace(sel.First().Text())
}
