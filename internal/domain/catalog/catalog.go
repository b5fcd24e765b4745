// Package catalog holds the read-only element catalog consumed by the
// legality checker, the bonus calculator and the quiz engine.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Category classifies an element for repetition rules.
type Category string

// Known element categories.
const (
	CategoryRoll          Category = "roll"
	CategoryTempo         Category = "tempo"
	CategoryArabian       Category = "arabian"
	CategorySalto         Category = "salto"
	CategorySingleTwist   Category = "single_twist"
	CategoryMultiTwist    Category = "multi_twist"
	CategoryMultipleSalto Category = "multiple_salto"
)

// Element is a single catalog entry.
type Element struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Symbol   string   `yaml:"symbol" json:"symbol" validate:"required"`
	Name     string   `yaml:"name" json:"name"`
	Category Category `yaml:"category" json:"category" validate:"required,oneof=roll tempo arabian salto single_twist multi_twist multiple_salto"`
	Value    float64  `yaml:"value" json:"value" validate:"min=0"`
}

// Catalog is a synchronous lookup over elements.
type Catalog interface {
	// Lookup returns the element for id and whether it exists.
	Lookup(id string) (Element, bool)
	// All returns every element ordered by id.
	All() []Element
	// Len returns the number of elements.
	Len() int
}

// document is the YAML layout of a catalog file.
type document struct {
	Version  string    `yaml:"version" validate:"required"`
	Elements []Element `yaml:"elements" validate:"required,min=1,dive"`
}

//go:embed data/elements.yaml
var defaultElements []byte

var validate = validator.New()

// InMemoryCatalog implements Catalog over an immutable map.
type InMemoryCatalog struct {
	version string
	byID    map[string]Element
	ordered []Element
}

var _ Catalog = (*InMemoryCatalog)(nil)

// New builds a catalog from elements. Ids must be unique.
func New(version string, elements []Element) (*InMemoryCatalog, error) {
	doc := document{Version: version, Elements: elements}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c := &InMemoryCatalog{
		version: version,
		byID:    make(map[string]Element, len(elements)),
		ordered: make([]Element, 0, len(elements)),
	}
	for _, e := range elements {
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateElement, e.ID)
		}
		c.byID[e.ID] = e
		c.ordered = append(c.ordered, e)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Load decodes a YAML catalog document from r.
func Load(r io.Reader) (*InMemoryCatalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return New(doc.Version, doc.Elements)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*InMemoryCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Default returns the catalog embedded in the binary.
func Default() *InMemoryCatalog {
	c, err := Load(bytes.NewReader(defaultElements))
	if err != nil {
		panic("embedded element catalog is invalid: " + err.Error())
	}
	return c
}

// Lookup returns the element registered under id.
func (c *InMemoryCatalog) Lookup(id string) (Element, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// All returns a copy of the elements ordered by id.
func (c *InMemoryCatalog) All() []Element {
	out := make([]Element, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of elements.
func (c *InMemoryCatalog) Len() int { return len(c.ordered) }

// Version returns the catalog document version.
func (c *InMemoryCatalog) Version() string { return c.version }
