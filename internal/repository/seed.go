package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	_ "embed"

	"catalog-console/internal/domain"
)

//go:embed fixtures/catalog.json
var defaultCatalog []byte

// Catalog is the on-disk shape of a seed file
type Catalog struct {
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
}

// SeedDefault loads the built-in demo catalog
func SeedDefault(ctx context.Context, categories CategoryRepository, products ProductRepository) error {
	return Seed(ctx, bytes.NewReader(defaultCatalog), categories, products)
}

// Seed loads a catalog JSON document into the repositories
func Seed(ctx context.Context, r io.Reader, categories CategoryRepository, products ProductRepository) error {
	var catalog Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i := range catalog.Categories {
		if err := categories.Create(ctx, &catalog.Categories[i]); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", catalog.Categories[i].Name, err)
		}
	}

	for i := range catalog.Products {
		if err := products.Create(ctx, &catalog.Products[i]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", catalog.Products[i].Name, err)
		}
	}

	return nil
}
