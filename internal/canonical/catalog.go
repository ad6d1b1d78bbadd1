// Package canonical holds the versioned, hand-authored reference calendar
// the sync engine reconciles against. The catalog is loaded once at startup
// and injected, never discovered at runtime.
package canonical

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Category names a conflict-classification bucket and the title keywords
// that map untagged legacy events into it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Definition is the authoritative description of one event that should
// exist in the family calendar.
type Definition struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	StartDate   time.Time `yaml:"start_date"`
	EndDate     time.Time `yaml:"end_date"`
	AllDay      bool      `yaml:"all_day"`
	AssignedTo  string    `yaml:"assigned_to"`
	Description string    `yaml:"description"`
	Location    string    `yaml:"location"`
	Source      string    `yaml:"source"`
	Category    string    `yaml:"category"`
}

// Window returns the definition's date range expanded by slack on both
// sides, used to catch mis-dated entries.
func (d Definition) Window(slack time.Duration) (time.Time, time.Time) {
	return d.StartDate.Add(-slack), d.EndDate.Add(slack)
}

// Catalog is the full reference configuration: the family-member set, the
// category keyword table and the event definitions themselves.
type Catalog struct {
	Version       int          `yaml:"version"`
	FamilyMembers []string     `yaml:"family_members"`
	Categories    []Category   `yaml:"categories"`
	Definitions   []Definition `yaml:"definitions"`
}

// Default returns the built-in catalog used when no file is configured.
// It carries the family-member set and category table but no definitions,
// so reconciliation is a no-op until a real catalog is supplied.
func Default() *Catalog {
	return &Catalog{
		Version:       1,
		FamilyMembers: []string{"mama", "papa", "emma", "leo"},
		Categories: []Category{
			{Name: "holiday", Keywords: []string{"holiday", "feriado"}},
			{Name: "prekinder", Keywords: []string{"prekinder", "preschool"}},
			{Name: "school-year", Keywords: []string{"year", "school"}},
		},
	}
}

// Load reads a catalog from the given YAML path. An empty path yields the
// built-in default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse canonical catalog: %w", err)
	}
	cat.Normalize()
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Normalize fills zero values so partially filled catalogs behave.
func (c *Catalog) Normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	def := Default()
	if len(c.FamilyMembers) == 0 {
		c.FamilyMembers = def.FamilyMembers
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
	for i := range c.Definitions {
		if c.Definitions[i].EndDate.IsZero() {
			c.Definitions[i].EndDate = c.Definitions[i].StartDate
		}
	}
}

func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Definitions))
	for _, d := range c.Definitions {
		switch {
		case d.ID == "":
			return errors.New("canonical definition without id")
		case seen[d.ID]:
			return fmt.Errorf("duplicate canonical definition id %q", d.ID)
		case d.Title == "":
			return fmt.Errorf("canonical definition %s has no title", d.ID)
		case d.StartDate.IsZero():
			return fmt.Errorf("canonical definition %s has no start date", d.ID)
		case d.EndDate.Before(d.StartDate):
			return fmt.Errorf("canonical definition %s ends before it starts", d.ID)
		case d.Category == "":
			return fmt.Errorf("canonical definition %s has no category", d.ID)
		case d.AssignedTo != "" && !c.HasMember(d.AssignedTo):
			return fmt.Errorf("canonical definition %s assigned to unknown member %q", d.ID, d.AssignedTo)
		}
		seen[d.ID] = true
	}
	return nil
}

// HasMember reports whether name belongs to the configured family set.
func (c *Catalog) HasMember(name string) bool {
	for _, m := range c.FamilyMembers {
		if m == name {
			return true
		}
	}
	return false
}

// CategoryKeywords returns the keyword table keyed by category name.
func (c *Catalog) CategoryKeywords() map[string][]string {
	out := make(map[string][]string, len(c.Categories))
	for _, cat := range c.Categories {
		out[cat.Name] = cat.Keywords
	}
	return out
}
