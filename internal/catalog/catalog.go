package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"smart-home-mock/internal/domain"
)

//go:embed appliances.yaml
var defaultAppliances []byte

var (
	ErrDuplicateApplianceID = errors.New("catalog: duplicate appliance id")
	ErrInvalidAppliance     = errors.New("catalog: invalid appliance")
)

type document struct {
	Appliances []domain.Appliance `yaml:"appliances"`
}

// Catalog holds the static sample appliances followed by the generated error
// appliances. It is immutable after construction and safe for concurrent use.
type Catalog struct {
	static    []domain.Appliance
	generated []domain.Appliance
	byID      map[string]domain.Appliance
	errorIDs  map[string]struct{}
}

// Load reads a static catalog from path, or the embedded sample catalog when
// path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultAppliances)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(doc.Appliances)
}

// New builds a catalog from static appliances. Ids must be unique across the
// static list and the generated error appliances.
func New(static []domain.Appliance) (*Catalog, error) {
	c := &Catalog{
		generated: GenerateErrorAppliances(),
		byID:      make(map[string]domain.Appliance),
		errorIDs:  make(map[string]struct{}),
	}

	for i, a := range static {
		if a.ApplianceID == "" {
			return nil, fmt.Errorf("%w: entry %d has no applianceId", ErrInvalidAppliance, i)
		}
		if _, exists := c.byID[a.ApplianceID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateApplianceID, a.ApplianceID)
		}
		a = a.Clone()
		c.static = append(c.static, a)
		c.byID[a.ApplianceID] = a
	}

	for _, a := range c.generated {
		if _, exists := c.byID[a.ApplianceID]; exists {
			return nil, fmt.Errorf("%w: %s collides with an error appliance", ErrDuplicateApplianceID, a.ApplianceID)
		}
		c.byID[a.ApplianceID] = a
		c.errorIDs[a.ApplianceID] = struct{}{}
	}

	return c, nil
}

// StaticAppliances returns the sample appliances in catalog order.
func (c *Catalog) StaticAppliances() []domain.Appliance {
	return cloneAll(c.static)
}

// ErrorAppliances returns the generated error appliances in generation order.
func (c *Catalog) ErrorAppliances() []domain.Appliance {
	return cloneAll(c.generated)
}

// Discover returns the static appliances followed by the error appliances.
func (c *Catalog) Discover() []domain.Appliance {
	result := make([]domain.Appliance, 0, len(c.static)+len(c.generated))
	result = append(result, cloneAll(c.static)...)
	result = append(result, cloneAll(c.generated)...)
	return result
}

func (c *Catalog) Find(id string) (domain.Appliance, bool) {
	a, ok := c.byID[id]
	if !ok {
		return domain.Appliance{}, false
	}
	return a.Clone(), true
}

func (c *Catalog) IsErrorAppliance(id string) bool {
	_, ok := c.errorIDs[id]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.static) + len(c.generated)
}

func cloneAll(appliances []domain.Appliance) []domain.Appliance {
	result := make([]domain.Appliance, len(appliances))
	for i, a := range appliances {
		result[i] = a.Clone()
	}
	return result
}
