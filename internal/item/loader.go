package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/validation"
)

// Sentinel errors for item loader
var (
	ErrDuplicateID = errors.New("duplicate item id")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Catalog is the immutable set of items the shop can ever offer
type Catalog struct {
	items []domain.Item
	byID  map[string]int
}

// NewCatalog indexes items. Callers must not modify items afterwards.
func NewCatalog(items []domain.Item) *Catalog {
	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return &Catalog{items: items, byID: byID}
}

// Items returns the catalog in file order. The slice is shared; do not modify it.
func (c *Catalog) Items() []domain.Item {
	return c.items
}

// Get returns the item with id
func (c *Catalog) Get(id string) (domain.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Item{}, false
	}
	return c.items[i], true
}

// GetByName returns the first item whose name matches exactly
func (c *Catalog) GetByName(name string) (domain.Item, bool) {
	for _, it := range c.items {
		if it.Name == name {
			return it, true
		}
	}
	return domain.Item{}, false
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Loader handles loading and validating the item catalog
type Loader interface {
	Load(path string) ([]domain.Item, error)
	Validate(items []domain.Item, classes []string) error
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a catalog JSON file
func (l *itemLoader) Load(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, validation.SchemaItems); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return items, nil
}

// Validate checks rules the schema cannot express: unique ids and known classes.
// An empty classes list skips the class check.
func (l *itemLoader) Validate(items []domain.Item, classes []string) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c] = true
	}

	ids := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, i)
		}
		if ids[it.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateID, it.ID)
		}
		ids[it.ID] = true

		if !it.Category.Valid() {
			return fmt.Errorf(ErrFmtItemBadCategory, ErrInvalidConfig, it.ID, it.Category)
		}
		if !it.Rarity.Valid() {
			return fmt.Errorf(ErrFmtItemBadRarity, ErrInvalidConfig, it.ID, it.Rarity)
		}
		if it.Price < 0 {
			return fmt.Errorf(ErrFmtItemNegativePrice, ErrInvalidConfig, it.ID)
		}
		if len(known) == 0 {
			continue
		}
		for _, c := range it.SuitableFor {
			if !known[c] {
				return fmt.Errorf(ErrFmtItemUnknownClass, ErrInvalidConfig, it.ID, c)
			}
		}
	}

	return nil
}

// LoadCatalog loads, validates and indexes the catalog at path
func LoadCatalog(l Loader, path string, classes []string) (*Catalog, error) {
	items, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(items, classes); err != nil {
		return nil, err
	}
	return NewCatalog(items), nil
}
