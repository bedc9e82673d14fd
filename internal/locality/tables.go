package locality

import (
	"strings"
)

// ExclusionTables holds the two read-only word lists consulted by the
// classifier. It is built once and never mutated, so a single value can be
// shared by any number of goroutines.
type ExclusionTables struct {
	regions  []string
	suffixes []string

	regionSet    map[string]struct{}
	suffixSet    map[string]struct{}
	foldedSuffix []string
}

// NewExclusionTables builds tables from region names and admin-unit suffix
// words. Blank entries and duplicates (ignoring case) are dropped.
func NewExclusionTables(regions, adminSuffixes []string) *ExclusionTables {
	t := &ExclusionTables{
		regionSet: make(map[string]struct{}, len(regions)),
		suffixSet: make(map[string]struct{}, len(adminSuffixes)),
	}

	for _, r := range regions {
		key := Fold(r)
		if key == "" {
			continue
		}
		if _, dup := t.regionSet[key]; dup {
			continue
		}
		t.regionSet[key] = struct{}{}
		t.regions = append(t.regions, strings.TrimSpace(r))
	}

	for _, s := range adminSuffixes {
		key := Fold(s)
		if key == "" {
			continue
		}
		if _, dup := t.suffixSet[key]; dup {
			continue
		}
		t.suffixSet[key] = struct{}{}
		t.suffixes = append(t.suffixes, strings.TrimSpace(s))
		t.foldedSuffix = append(t.foldedSuffix, key)
	}

	return t
}

// IsExcludedRegion reports whether name is a state/province name.
func (t *ExclusionTables) IsExcludedRegion(name string) bool {
	_, ok := t.regionSet[Fold(name)]
	return ok
}

// ContainsAdminSuffix reports whether any suffix word occurs anywhere in name.
// This is a substring test, so "Pune District" and "Subdistrict" both match
// "District".
func (t *ExclusionTables) ContainsAdminSuffix(name string) bool {
	folded := Fold(name)
	if folded == "" {
		return false
	}
	for _, s := range t.foldedSuffix {
		if strings.Contains(folded, s) {
			return true
		}
	}
	return false
}

// IsAdminSuffix reports whether word is exactly one of the suffix words.
func (t *ExclusionTables) IsAdminSuffix(word string) bool {
	_, ok := t.suffixSet[Fold(word)]
	return ok
}

// Regions returns a copy of the region names.
func (t *ExclusionTables) Regions() []string {
	return append([]string(nil), t.regions...)
}

// AdminSuffixes returns a copy of the suffix words.
func (t *ExclusionTables) AdminSuffixes() []string {
	return append([]string(nil), t.suffixes...)
}
