package catalog

import (
	"sort"
	"strings"

	"github.com/hirehub/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// SortKey orders a catalog view. The set is closed; unknown keys fail at
// parse time with INVALID_QUERY.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// IsValid reports whether s is a known sort key
func (s SortKey) IsValid() bool {
	switch s {
	case SortPopular, SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// ParseSortKey parses a raw sort key string.
// Empty input defaults to SortPopular; unknown values fail closed.
func ParseSortKey(raw string) (SortKey, error) {
	s := SortKey(strings.TrimSpace(raw))
	if s == "" {
		return SortPopular, nil
	}
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_QUERY", "Unknown sort key: "+raw)
	}
	return s, nil
}

// QueryParams describes one catalog view: a free-text term, a category
// filter, and a total ordering.
type QueryParams struct {
	Term     string
	Category Category
	Sort     SortKey
}

// Validate checks that the params are inside the engine's documented domain
func (p QueryParams) Validate() error {
	if !p.Category.IsFilter() {
		return shared.NewDomainError("INVALID_QUERY", "Unknown category: "+string(p.Category))
	}
	if p.Sort != "" && !p.Sort.IsValid() {
		return shared.NewDomainError("INVALID_QUERY", "Unknown sort key: "+string(p.Sort))
	}
	return nil
}

// Query produces a deterministically ordered, filtered view of entries.
//
// Filtering is conjunctive: an entry passes only if it matches the category
// filter (unset/"all" passes everything) and the term filter (whitespace-only
// terms are treated as empty). Term matching is case-insensitive substring
// matching against the display name and every search term; any field
// matching is enough. Sorting is stable and total.
//
// The function is pure: it never mutates entries and always returns a new
// slice. Out-of-domain params are a defect and fail loudly with
// INVALID_QUERY.
func Query(entries []Employee, params QueryParams) ([]Employee, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// A Caser is stateful, so it must not outlive the call
	folder := cases.Fold()

	term := strings.TrimSpace(params.Term)
	foldedTerm := ""
	if term != "" {
		foldedTerm = folder.String(term)
	}

	result := make([]Employee, 0, len(entries))
	for _, e := range entries {
		if !matchesCategory(&e, params.Category) {
			continue
		}
		if foldedTerm != "" && !matchesTerm(&e, folder, foldedTerm) {
			continue
		}
		result = append(result, e)
	}

	sortEntries(result, params.Sort)

	return result, nil
}

// matchesCategory applies the category filter (unset/"all" passes)
func matchesCategory(e *Employee, c Category) bool {
	if c == "" || c == CategoryAll {
		return true
	}
	return e.Category == c
}

// matchesTerm reports whether any searchable field contains the folded term
func matchesTerm(e *Employee, folder cases.Caser, foldedTerm string) bool {
	for _, field := range e.SearchTerms() {
		if strings.Contains(folder.String(field), foldedTerm) {
			return true
		}
	}
	return false
}

// sortEntries orders entries in place with a stable, total ordering.
// An empty sort key leaves the filtered input order untouched.
func sortEntries(entries []Employee, key SortKey) {
	switch key {
	case SortPopular:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].PopularityRank < entries[j].PopularityRank
		})
	case SortNewest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].PriceMinor < entries[j].PriceMinor
		})
	case SortPriceDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].PriceMinor > entries[j].PriceMinor
		})
	}
}
