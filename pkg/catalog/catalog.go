// Package catalog holds the static crop requirement table the scorer ranks against.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"

	"cropadvisor/entities"
)

//go:embed catalog.yaml
var defaultRawData []byte

var ErrInvalidCatalog = errors.New("invalid crop catalog")

// catalogFile is the top-level structure of a YAML catalog.
type catalogFile struct {
	Crops []entities.CropProfile `yaml:"crops"`
}

// Catalog is an ordered, read-only set of crop profiles.
type Catalog struct {
	crops []entities.CropProfile
	byKey map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultRawData)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("catalog: embedded: %w", defaultErr)
		}
	})
	return defaultCat, defaultErr
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	return New(f.Crops)
}

// New validates crops and builds a catalog that owns a private copy of them.
func New(crops []entities.CropProfile) (*Catalog, error) {
	if len(crops) == 0 {
		return nil, fmt.Errorf("%w: no crops", ErrInvalidCatalog)
	}
	c := &Catalog{crops: make([]entities.CropProfile, len(crops)), byKey: make(map[string]int, len(crops))}
	names := make(map[string]bool, len(crops))
	for i, cp := range crops {
		cp.Name = strings.TrimSpace(cp.Name)
		if cp.Name == "" {
			return nil, fmt.Errorf("%w: crop #%d has no name", ErrInvalidCatalog, i+1)
		}
		cp.Key = strings.ToLower(strings.TrimSpace(cp.Key))
		if cp.Key == "" {
			cp.Key = keyOf(cp.Name)
		}
		if err := checkRequirements(cp); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[cp.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidCatalog, cp.Key)
		}
		if names[cp.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidCatalog, cp.Name)
		}
		names[cp.Name] = true
		cp.Tags = append([]string(nil), cp.Tags...)
		c.crops[i] = cp
		c.byKey[cp.Key] = i
	}
	return c, nil
}

func checkRequirements(cp entities.CropProfile) error {
	r := cp.Requirements
	switch {
	case r.MinRainfall < 0 || r.MaxRainfall < 0:
		return fmt.Errorf("%w: %s: negative rainfall bound", ErrInvalidCatalog, cp.Name)
	case r.MinRainfall > r.MaxRainfall:
		return fmt.Errorf("%w: %s: min_rainfall %.0f > max_rainfall %.0f", ErrInvalidCatalog, cp.Name, r.MinRainfall, r.MaxRainfall)
	case r.MinTemp > r.MaxTemp:
		return fmt.Errorf("%w: %s: min_temp %.1f > max_temp %.1f", ErrInvalidCatalog, cp.Name, r.MinTemp, r.MaxTemp)
	case r.MinHumidity < 0:
		return fmt.Errorf("%w: %s: negative min_humidity", ErrInvalidCatalog, cp.Name)
	}
	return nil
}

// keyOf slugs the whole name: "Corn (Maize)" becomes "corn-maize".
func keyOf(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			dash = b.Len() > 0
			continue
		}
		if dash {
			b.WriteByte('-')
			dash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Entries returns a copy of the crops in catalog order.
func (c *Catalog) Entries() []entities.CropProfile {
	cp := make([]entities.CropProfile, len(c.crops))
	for i := range c.crops {
		cp[i] = c.crops[i]
		cp[i].Tags = append([]string(nil), c.crops[i].Tags...)
	}
	return cp
}

func (c *Catalog) Len() int { return len(c.crops) }

// Get looks a crop up by key.
func (c *Catalog) Get(key string) (entities.CropProfile, bool) {
	i, ok := c.byKey[strings.ToLower(key)]
	if !ok {
		return entities.CropProfile{}, false
	}
	cp := c.crops[i]
	cp.Tags = append([]string(nil), cp.Tags...)
	return cp, true
}
