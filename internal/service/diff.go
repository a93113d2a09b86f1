package service

import "sort"

// NewWork returns the links found on the listing page that are not yet in
// the processed set, in lexicographic order so progress reporting is
// deterministic between runs. Links compare by exact string equality; no URL
// normalization is applied.
func NewWork(found []string, processed map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(found))
	work := make([]string, 0, len(found))
	for _, link := range found {
		if link == "" {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		if _, done := processed[link]; done {
			continue
		}
		work = append(work, link)
	}
	sort.Strings(work)
	return work
}
