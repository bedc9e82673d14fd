package locality

// Policy holds the positional knobs of the classifier.
//
// The defaults assume the last two display tokens are state and country and
// that anything before the third-from-last token is finer than a city. They
// are tuned for Indian results, not derived from any geographic rule.
type Policy struct {
	// CityTailReserve: a city must sit before the last N tokens.
	CityTailReserve int `json:"city_tail_reserve" yaml:"city_tail_reserve"`
	// SuburbTailReserve: a token before the last N tokens is suburb-like.
	SuburbTailReserve int `json:"suburb_tail_reserve" yaml:"suburb_tail_reserve"`
	// CountryName is skipped by the display-name scan.
	CountryName string `json:"country_name" yaml:"country_name"`
}

// DefaultPolicy returns the policy for Indian addresses.
func DefaultPolicy() Policy {
	return Policy{
		CityTailReserve:   2,
		SuburbTailReserve: 3,
		CountryName:       "India",
	}
}

// withDefaults fills zero fields from DefaultPolicy.
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.CityTailReserve <= 0 {
		p.CityTailReserve = d.CityTailReserve
	}
	if p.SuburbTailReserve <= 0 {
		p.SuburbTailReserve = d.SuburbTailReserve
	}
	if p.CountryName == "" {
		p.CountryName = d.CountryName
	}
	return p
}
