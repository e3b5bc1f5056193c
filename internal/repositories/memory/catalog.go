package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// LoadCatalogFile reads a JSON array of catalog items.
func LoadCatalogFile(path string) ([]domain.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog seed file: %w", err)
	}
	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed file: %w", err)
	}
	return items, nil
}

// SetCatalog replaces the catalog. Existing session baselines are unaffected.
func (s *Store) SetCatalog(items []domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cloneCatalog(items)
}

func (s *Store) ListCatalogItems(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CatalogItem
	for _, item := range cloneCatalog(s.catalog) {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}
