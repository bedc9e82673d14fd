package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/locality-resolver/internal/locality"
)

// LocalityCfg is the classifier policy file. Empty lists fall back to the
// embedded Indian tables; zero numbers fall back to locality.DefaultPolicy.
type LocalityCfg struct {
	Regions           []string `yaml:"regions" json:"regions"`
	AdminSuffixes     []string `yaml:"admin_suffixes" json:"admin_suffixes"`
	ExtraRegions      []string `yaml:"extra_regions" json:"extra_regions"`
	CountryName       string   `yaml:"country_name" json:"country_name"`
	CityTailReserve   int      `yaml:"city_tail_reserve" json:"city_tail_reserve"`
	SuburbTailReserve int      `yaml:"suburb_tail_reserve" json:"suburb_tail_reserve"`
}

// Load reads the policy file at path. A missing file is not an error and
// yields the defaults. Environment variables override file values:
//
//	LOCALITY_COUNTRY_NAME
//	LOCALITY_CITY_TAIL_RESERVE
//	LOCALITY_SUBURB_TAIL_RESERVE
//	LOCALITY_EXTRA_REGIONS (comma separated)
func Load(path string) (*LocalityCfg, error) {
	c := &LocalityCfg{}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, err
			}
		}
	}

	// ENV overrides
	if v := os.Getenv("LOCALITY_COUNTRY_NAME"); v != "" {
		c.CountryName = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOCALITY_CITY_TAIL_RESERVE")); err == nil {
		c.CityTailReserve = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOCALITY_SUBURB_TAIL_RESERVE")); err == nil {
		c.SuburbTailReserve = v
	}
	if v := os.Getenv("LOCALITY_EXTRA_REGIONS"); v != "" {
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				c.ExtraRegions = append(c.ExtraRegions, r)
			}
		}
	}
	return c, nil
}

// Tables builds the exclusion tables described by c.
func (c *LocalityCfg) Tables() *locality.ExclusionTables {
	defaults := locality.DefaultTablesFile()

	regions := c.Regions
	if len(regions) == 0 {
		regions = defaults.Regions
	}
	suffixes := c.AdminSuffixes
	if len(suffixes) == 0 {
		suffixes = defaults.AdminSuffixes
	}

	all := make([]string, 0, len(regions)+len(c.ExtraRegions))
	all = append(all, regions...)
	all = append(all, c.ExtraRegions...)
	return locality.NewExclusionTables(all, suffixes)
}

// Policy returns the classifier policy described by c.
func (c *LocalityCfg) Policy() locality.Policy {
	return locality.Policy{
		CityTailReserve:   c.CityTailReserve,
		SuburbTailReserve: c.SuburbTailReserve,
		CountryName:       c.CountryName,
	}
}

// Classifier builds a classifier from c.
func (c *LocalityCfg) Classifier() *locality.Classifier {
	return locality.NewClassifier(c.Tables(), c.Policy())
}
