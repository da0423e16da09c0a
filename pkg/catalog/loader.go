// Package catalog provides the embedded deal catalog that ships with the
// server binary.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mpocar/dealer-finder/pkg/models"
)

//go:embed catalog.yaml
var catalogRawData []byte

// catalogFile is the top-level structure of the embedded YAML.
type catalogFile struct {
	Deals []models.Deal `yaml:"deals"`
}

// Catalog provides lazy-loaded access to the embedded deal catalog.
type Catalog struct {
	once  sync.Once
	deals []models.Deal
	err   error
}

// New creates a Catalog that parses the embedded YAML on first access.
func New() *Catalog {
	return &Catalog{}
}

// Deals returns a copy of all catalog deals, preserving file order.
func (c *Catalog) Deals() ([]models.Deal, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.Deal, len(c.deals))
	copy(cp, c.deals)
	return cp, nil
}

// load parses the embedded YAML catalog data.
func (c *Catalog) load() {
	var f catalogFile
	if err := yaml.Unmarshal(catalogRawData, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}
	c.deals = f.Deals
}
