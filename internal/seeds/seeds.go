// Package seeds holds the bundled sample data loaded into empty stores
// outside production.
package seeds

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"hotel_finder/internal/domain"
)

//go:embed *.yaml
var files embed.FS

// Load decodes the bundled documents for c.
func Load(c domain.Collection) ([]domain.Document, error) {
	if _, err := domain.ParseCollection(c.String()); err != nil {
		return nil, err
	}
	b, err := files.ReadFile(c.String() + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", c, err)
	}
	var docs []domain.Document
	if err := yaml.Unmarshal(b, &docs); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", c, err)
	}
	return docs, nil
}

// All returns the bundled documents for every collection.
func All() (map[domain.Collection][]domain.Document, error) {
	out := make(map[domain.Collection][]domain.Document, 3)
	for _, c := range domain.Collections() {
		docs, err := Load(c)
		if err != nil {
			return nil, err
		}
		out[c] = docs
	}
	return out, nil
}
