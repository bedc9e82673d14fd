package locality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndiaClassifier() *Classifier {
	return NewClassifier(DefaultTables(), DefaultPolicy())
}

func TestClassifier_Classify(t *testing.T) {
	c := newIndiaClassifier()

	testCases := []struct {
		name        string
		details     Details
		displayName string
		wantCity    string
		wantStage   Stage
	}{
		{
			name:        "structured city accepted",
			details:     Details{City: "Mumbai", Suburb: "Andheri West"},
			displayName: "Andheri West, Mumbai, Maharashtra, India",
			wantCity:    "Mumbai",
			wantStage:   StageCity,
		},
		{
			name:        "suburb in city field falls through to display scan",
			details:     Details{City: "Bandra", Suburb: "Bandra"},
			displayName: "Bandra, Mumbai, Maharashtra, India",
			wantCity:    "Mumbai",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "excluded region in city field is skipped",
			details:     Details{City: "Maharashtra"},
			displayName: "Andheri, Mumbai, Maharashtra, India",
			wantCity:    "Mumbai",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "excluded region compared case-insensitively",
			details:     Details{City: "MAHARASHTRA", County: "Thane"},
			displayName: "Kalwa, Thane, Maharashtra, India",
			wantCity:    "Thane",
			wantStage:   StageCounty,
		},
		{
			name:        "county suffix stripped",
			details:     Details{County: "Pune District"},
			displayName: "Kothrud, Pune District, Maharashtra, India",
			wantCity:    "Pune",
			wantStage:   StageCounty,
		},
		{
			name:        "county without suffix used as is",
			details:     Details{City: "Maharashtra", County: "Nagpur"},
			displayName: "Sitabuldi, Nagpur, Maharashtra, India",
			wantCity:    "Nagpur",
			wantStage:   StageCounty,
		},
		{
			name:        "city too close to the tail is rejected",
			details:     Details{City: "Mumbai Suburban", County: "Mumbai"},
			displayName: "Andheri, Mumbai, Mumbai Suburban, India",
			wantCity:    "Mumbai",
			wantStage:   StageCounty,
		},
		{
			name:        "town used when city and county are missing",
			details:     Details{Town: "Lonavala"},
			displayName: "Lonavala, Maharashtra, India",
			wantCity:    "Lonavala",
			wantStage:   StageLocalField,
		},
		{
			name:        "city_district wins over town",
			details:     Details{CityDistrict: "Secunderabad", Town: "Bolarum"},
			displayName: "Secunderabad, Telangana, India",
			wantCity:    "Secunderabad",
			wantStage:   StageLocalField,
		},
		{
			name:        "rejected first local field does not try the next one",
			details:     Details{CityDistrict: "Maharashtra", Town: "Lonavala"},
			displayName: "Lonavala, Pune, Maharashtra, India",
			wantCity:    "Pune",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "tahsil stripped during display scan",
			details:     Details{},
			displayName: "Gangapur, Nashik Tahsil, Maharashtra, India",
			wantCity:    "Nashik",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "taluka stripped during display scan",
			details:     Details{Suburb: "Baner"},
			displayName: "Baner, Haveli Taluka, Maharashtra, India",
			wantCity:    "Haveli",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "suburb field matched case-insensitively",
			details:     Details{City: "koramangala", Suburb: "Koramangala"},
			displayName: "Koramangala, Bengaluru, Karnataka, India",
			wantCity:    "Bengaluru",
			wantStage:   StageDisplayScan,
		},
		{
			name:        "city absent from display name passes the position bound",
			details:     Details{City: "Gurugram"},
			displayName: "Sector 29, Gurgaon, Haryana, India",
			wantCity:    "Gurugram",
			wantStage:   StageCity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := c.Classify(tc.details, SplitDisplayName(tc.displayName))
			require.True(t, ok)
			assert.Equal(t, tc.wantCity, m.City)
			assert.Equal(t, tc.wantStage, m.Stage)
		})
	}
}

func TestClassifier_Undetermined(t *testing.T) {
	c := newIndiaClassifier()

	testCases := []struct {
		name        string
		details     Details
		displayName string
	}{
		{
			name:        "state and country only",
			displayName: "Maharashtra, India",
		},
		{
			name: "empty result",
		},
		{
			name:        "country placeholder and suburb skipped",
			displayName: "Kothrud, INDIA, Maharashtra, India",
		},
		{
			name:        "admin word not at the end of the token",
			displayName: "District Court Road, Maharashtra, India",
		},
		{
			name:        "bare suffix token",
			details:     Details{County: "District"},
			displayName: "Tehsil, Maharashtra, India",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := c.Classify(tc.details, SplitDisplayName(tc.displayName))
			assert.False(t, ok)
			assert.Equal(t, Match{}, m)
			assert.Equal(t, StageNone, m.Stage)
		})
	}
}

func TestClassifier_RegionCityNeverChosenAtCityStage(t *testing.T) {
	c := newIndiaClassifier()

	for _, region := range DefaultTables().Regions() {
		m, ok := c.Classify(Details{City: region}, SplitDisplayName(region+", India"))
		if ok {
			assert.NotEqual(t, StageCity, m.Stage, region)
		}
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	c := newIndiaClassifier()
	details := Details{City: "Bandra", Suburb: "Bandra", County: "Mumbai Suburban District"}
	tokens := SplitDisplayName("Bandra, Mumbai, Maharashtra, India")

	first, ok1 := c.Classify(details, tokens)
	second, ok2 := c.Classify(details, tokens)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, DisplayTokens{"Bandra", "Mumbai", "Maharashtra", "India"}, tokens)
}

func TestClassifier_InjectedTables(t *testing.T) {
	tables := NewExclusionTables([]string{"Ontario"}, []string{"County"})
	c := NewClassifier(tables, Policy{CountryName: "Canada"})

	m, ok := c.Classify(Details{}, SplitDisplayName("Downtown, Toronto, Ontario, Canada"))
	require.True(t, ok)
	assert.Equal(t, "Toronto", m.City)

	m, ok = c.Classify(Details{County: "Peel County"}, SplitDisplayName("Malton, Peel County, Ontario, Canada"))
	require.True(t, ok)
	assert.Equal(t, "Peel", m.City)
	assert.Equal(t, StageCounty, m.Stage)

	// Indian defaults are not in play.
	m, ok = c.Classify(Details{City: "Maharashtra"}, SplitDisplayName("Maharashtra, Ontario, Canada"))
	require.True(t, ok)
	assert.Equal(t, "Maharashtra", m.City)
}

func TestClassifier_PolicyDefaults(t *testing.T) {
	c := NewClassifier(nil, Policy{})
	assert.Equal(t, DefaultPolicy(), c.Policy())
	assert.Empty(t, c.Tables().Regions())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "city", StageCity.String())
	assert.Equal(t, "county", StageCounty.String())
	assert.Equal(t, "local_field", StageLocalField.String())
	assert.Equal(t, "display_scan", StageDisplayScan.String())
	assert.Equal(t, "none", StageNone.String())
}
