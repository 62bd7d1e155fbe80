package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/niksmo/fitstore/internal/core/domain"
)

//go:embed products.json
var defaultProducts []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Load returns the catalog read from the JSON file at path, or the
// built-in catalog when path is empty.
func Load(path string) ([]domain.Product, error) {
	const op = "seed.Load"

	data := defaultProducts
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	ps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// Parse decodes and validates a catalog.
func Parse(data []byte) ([]domain.Product, error) {
	const op = "seed.Parse"

	var ps []domain.Product
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validate(ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func validate(ps []domain.Product) error {
	var errs []error
	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("product #%d: empty id", i))
			continue
		}
		if _, ok := seen[p.ID]; ok {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
		}
		seen[p.ID] = struct{}{}

		if p.Price < 0 {
			errs = append(errs, fmt.Errorf("product %q: negative price", p.ID))
		}
		if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
			errs = append(errs, fmt.Errorf("product %q: rating out of range", p.ID))
		}
		if p.Reviews != nil && *p.Reviews < 0 {
			errs = append(errs, fmt.Errorf("product %q: negative reviews", p.ID))
		}
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
