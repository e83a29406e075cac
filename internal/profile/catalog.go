package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pension-report/internal/model"
)

// Catalog is the read-only lookup of demo profiles and investment options.
type Catalog struct {
	Profiles          []model.Profile          `yaml:"profiles"`
	InvestmentOptions []model.InvestmentOption `yaml:"investment_options"`

	byID map[string]model.Profile
}

func Default() *Catalog {
	c := &Catalog{
		Profiles: []model.Profile{
			{
				ID:            "user_001",
				Name:          "Jan Kowalski",
				BirthYear:     1985,
				BirthMonth:    6,
				Sex:           model.GenderMale,
				Workclass:     "Private",
				Education:     "Bachelors",
				MaritalStatus: "Married-civ-spouse",
				Occupation:    "Exec-managerial",
				Relationship:  "Husband",
				Race:          "White",
				NativeCountry: "Poland",
			},
			{
				ID:            "user_002",
				Name:          "Anna Nowak",
				BirthYear:     1990,
				BirthMonth:    3,
				Sex:           model.GenderFemale,
				Workclass:     "State-gov",
				Education:     "Masters",
				MaritalStatus: "Never-married",
				Occupation:    "Prof-specialty",
				Relationship:  "Unmarried",
				Race:          "White",
				NativeCountry: "Poland",
			},
		},
		InvestmentOptions: []model.InvestmentOption{
			{Name: "ETF Index Funds", Return: "5–7% yearly", Risk: "Low", Description: "Diversified, long-term growth with low fees."},
			{Name: "Real Estate", Return: "4–6% yearly", Risk: "Medium", Description: "Stable, inflation-protected investment over time."},
			{Name: "Crypto Assets", Return: "10–30% yearly", Risk: "High", Description: "Speculative and volatile, suitable for small portfolio share."},
		},
	}
	c.index()
	return c
}

// Load reads a catalog from a YAML file. An empty path yields the built-in
// demo catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse profile catalog: %w", err)
	}
	for _, p := range c.Profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("profile %q has no id", p.Name)
		}
		if !p.Sex.Valid() {
			return nil, fmt.Errorf("profile %s: unknown sex %q", p.ID, p.Sex)
		}
	}
	c.index()
	return &c, nil
}

func (c *Catalog) index() {
	c.byID = make(map[string]model.Profile, len(c.Profiles))
	for _, p := range c.Profiles {
		c.byID[p.ID] = p
	}
}

// Get returns a copy of the profile with the given id.
func (c *Catalog) Get(id string) (*model.Profile, bool) {
	p, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &p, true
}
