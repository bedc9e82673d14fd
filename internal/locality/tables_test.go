package locality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionTables_IsExcludedRegion(t *testing.T) {
	tables := DefaultTables()

	assert.True(t, tables.IsExcludedRegion("Maharashtra"))
	assert.True(t, tables.IsExcludedRegion("  tamil nadu "))
	assert.True(t, tables.IsExcludedRegion("WEST BENGAL"))
	assert.False(t, tables.IsExcludedRegion("Mumbai"))
	assert.False(t, tables.IsExcludedRegion("Delhi"))
	assert.False(t, tables.IsExcludedRegion(""))
}

func TestExclusionTables_ContainsAdminSuffix(t *testing.T) {
	tables := DefaultTables()

	testCases := []struct {
		input    string
		expected bool
	}{
		{"Pune District", true},
		{"Nashik Tahsil", true},
		{"Haveli Taluka", true},
		{"Hathras tehsil", true},
		{"Saroornagar Mandal", true},
		{"Mumbai Subdistrict", true},
		{"Mumbai", false},
		{"Bengaluru Urban", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, tables.ContainsAdminSuffix(tc.input))
		})
	}
}

func TestExclusionTables_IsAdminSuffix(t *testing.T) {
	tables := DefaultTables()

	assert.True(t, tables.IsAdminSuffix("district"))
	assert.True(t, tables.IsAdminSuffix("Taluka"))
	assert.False(t, tables.IsAdminSuffix("Subdistrict"))
	assert.False(t, tables.IsAdminSuffix("Pune District"))
}

func TestExclusionTables_DropsBlankAndDuplicateEntries(t *testing.T) {
	tables := NewExclusionTables(
		[]string{"Goa", " goa ", "", "Kerala"},
		[]string{"District", "DISTRICT", "  "},
	)

	assert.Equal(t, []string{"Goa", "Kerala"}, tables.Regions())
	assert.Equal(t, []string{"District"}, tables.AdminSuffixes())
}

func TestExclusionTables_ReturnsCopies(t *testing.T) {
	tables := NewExclusionTables([]string{"Goa"}, []string{"District"})

	regions := tables.Regions()
	regions[0] = "Mumbai"
	suffixes := tables.AdminSuffixes()
	suffixes[0] = "Road"

	assert.True(t, tables.IsExcludedRegion("Goa"))
	assert.False(t, tables.IsExcludedRegion("Mumbai"))
	assert.Equal(t, []string{"District"}, tables.AdminSuffixes())
}

func TestParseTables(t *testing.T) {
	tables, err := ParseTables([]byte("regions:\n  - Bavaria\nadmin_suffixes:\n  - Landkreis\n"))
	require.NoError(t, err)

	assert.True(t, tables.IsExcludedRegion("bavaria"))
	assert.True(t, tables.ContainsAdminSuffix("Landkreis Erding"))

	_, err = ParseTables([]byte("regions: [unterminated"))
	assert.Error(t, err)
}

func TestDefaultTables_Embedded(t *testing.T) {
	f := DefaultTablesFile()

	assert.Contains(t, f.Regions, "Maharashtra")
	assert.Contains(t, f.AdminSuffixes, "District")
	assert.Contains(t, f.AdminSuffixes, "Tehsil")
	assert.Contains(t, f.AdminSuffixes, "Taluka")
	assert.Contains(t, f.AdminSuffixes, "Mandal")
	assert.Len(t, DefaultTables().Regions(), len(f.Regions))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pune", Fold("  PUNE "))
	assert.True(t, EqualFold("Bengaluru", "BENGALURU"))
	assert.True(t, EqualFold("Caf\u00e9", "CAFE\u0301"))
}
