// Package locality picks the city out of a geocoder's hierarchical result.
//
// Providers fill city, county and the free-text display name inconsistently,
// so the classifier walks a fixed sequence of stages and keeps the first
// candidate that survives the exclusion checks:
//
//  1. the structured city field
//  2. the county field with a trailing admin-unit word removed
//  3. the first non-empty of city_district, town, village
//  4. a backward scan of the display name, skipping the country
//
// The suburb test is positional and therefore approximate: an ambiguous
// address can still resolve to the wrong city, and no confidence is reported.
package locality

import "strings"

// Stage identifies which step of the classifier produced a city.
type Stage int

const (
	StageNone Stage = iota
	StageCity
	StageCounty
	StageLocalField
	StageDisplayScan
)

func (s Stage) String() string {
	switch s {
	case StageCity:
		return "city"
	case StageCounty:
		return "county"
	case StageLocalField:
		return "local_field"
	case StageDisplayScan:
		return "display_scan"
	default:
		return "none"
	}
}

// Details is the subset of the provider's address breakdown the classifier
// reads. Everything else in the provider payload is ignored.
type Details struct {
	City         string
	County       string
	Suburb       string
	CityDistrict string
	Town         string
	Village      string
}

// Match is a classified city and the stage that chose it.
type Match struct {
	City  string
	Stage Stage
}

// Classifier is safe for concurrent use; it holds only immutable data.
type Classifier struct {
	tables *ExclusionTables
	policy Policy
}

// NewClassifier creates a classifier over the given tables. Zero policy
// fields take their DefaultPolicy values.
func NewClassifier(tables *ExclusionTables, policy Policy) *Classifier {
	if tables == nil {
		tables = NewExclusionTables(nil, nil)
	}
	return &Classifier{
		tables: tables,
		policy: policy.withDefaults(),
	}
}

// Tables returns the exclusion tables in use.
func (c *Classifier) Tables() *ExclusionTables { return c.tables }

// Policy returns the effective policy.
func (c *Classifier) Policy() Policy { return c.policy }

// Classify returns the city for one provider result, or false when no stage
// yields a usable name. It has no side effects.
func (c *Classifier) Classify(d Details, tokens DisplayTokens) (Match, bool) {
	if city, ok := c.fromCity(d, tokens); ok {
		return Match{City: city, Stage: StageCity}, true
	}
	if city, ok := c.fromCounty(d, tokens); ok {
		return Match{City: city, Stage: StageCounty}, true
	}
	if city, ok := c.fromLocalField(d, tokens); ok {
		return Match{City: city, Stage: StageLocalField}, true
	}
	if city, ok := c.fromDisplayScan(d, tokens); ok {
		return Match{City: city, Stage: StageDisplayScan}, true
	}
	return Match{}, false
}

func (c *Classifier) fromCity(d Details, tokens DisplayTokens) (string, bool) {
	city := strings.TrimSpace(d.City)
	if city == "" || !c.validCity(city, d, tokens) {
		return "", false
	}
	return city, true
}

func (c *Classifier) fromCounty(d Details, tokens DisplayTokens) (string, bool) {
	county := strings.TrimSpace(d.County)
	if county == "" {
		return "", false
	}
	candidate, _ := c.stripAdminSuffix(county)
	if candidate == "" || !c.validCity(candidate, d, tokens) {
		return "", false
	}
	return candidate, true
}

// fromLocalField only looks at the first non-empty field. If that one is
// rejected the stage fails without trying the rest.
func (c *Classifier) fromLocalField(d Details, tokens DisplayTokens) (string, bool) {
	for _, field := range []string{d.CityDistrict, d.Town, d.Village} {
		candidate := strings.TrimSpace(field)
		if candidate == "" {
			continue
		}
		if !c.acceptable(candidate, d, tokens) {
			return "", false
		}
		return candidate, true
	}
	return "", false
}

// fromDisplayScan walks the display tokens from the state end towards the
// most specific one. The last token is the country and is never considered.
func (c *Classifier) fromDisplayScan(d Details, tokens DisplayTokens) (string, bool) {
	for i := len(tokens) - 2; i >= 0; i-- {
		token := tokens[i]
		if token == "" {
			continue
		}

		if c.tables.ContainsAdminSuffix(token) {
			rest, stripped := c.stripAdminSuffix(token)
			if stripped && rest != "" && c.acceptable(rest, d, tokens) {
				return rest, true
			}
			continue
		}

		if c.tables.IsExcludedRegion(token) || EqualFold(token, c.policy.CountryName) {
			continue
		}
		if c.isSuburbLike(token, d, tokens) {
			continue
		}
		return token, true
	}
	return "", false
}

// validCity is acceptable plus the city position bound. A name that does
// not occur in the display tokens at all (index -1) passes the bound.
func (c *Classifier) validCity(name string, d Details, tokens DisplayTokens) bool {
	if !c.acceptable(name, d, tokens) {
		return false
	}
	return tokens.Index(name) < len(tokens)-c.policy.CityTailReserve
}

func (c *Classifier) acceptable(name string, d Details, tokens DisplayTokens) bool {
	return !c.tables.IsExcludedRegion(name) &&
		!c.isSuburbLike(name, d, tokens) &&
		!c.tables.ContainsAdminSuffix(name)
}

func (c *Classifier) isSuburbLike(name string, d Details, tokens DisplayTokens) bool {
	if strings.TrimSpace(d.Suburb) != "" && EqualFold(name, d.Suburb) {
		return true
	}
	idx := tokens.Index(name)
	return idx >= 0 && idx < len(tokens)-c.policy.SuburbTailReserve
}

// stripAdminSuffix drops the last word of s when it is an admin-unit word.
func (c *Classifier) stripAdminSuffix(s string) (string, bool) {
	words := strings.Fields(s)
	if len(words) == 0 || !c.tables.IsAdminSuffix(words[len(words)-1]) {
		return s, false
	}
	return strings.Join(words[:len(words)-1], " "), true
}
