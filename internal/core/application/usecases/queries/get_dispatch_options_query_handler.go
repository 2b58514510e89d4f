package queries

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
)

// GetDispatchOptionsQueryHandler lists the known values per dispatch category.
type GetDispatchOptionsQueryHandler struct {
	resolver services.DispatchResolver
}

// NewGetDispatchOptionsQueryHandler creates the handler with the given resolver.
func NewGetDispatchOptionsQueryHandler(resolver services.DispatchResolver) GetDispatchOptionsQueryHandler {
	return GetDispatchOptionsQueryHandler{resolver: resolver}
}

// Handle returns one entry per requested category.
func (h GetDispatchOptionsQueryHandler) Handle(_ context.Context, query GetDispatchOptionsQuery) ([]DispatchOptions, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	categories := order.DispatchCategories()
	if query.Category() != order.NoCategory {
		categories = []order.DispatchCategory{query.Category()}
	}

	result := make([]DispatchOptions, 0, len(categories))
	for _, category := range categories {
		options := slices.Clone(h.resolver.Options(category))
		if options == nil {
			options = make([]string, 0)
		}
		result = append(result, DispatchOptions{
			Category:   category,
			UsesRoster: category.UsesRoster(),
			Options:    options,
		})
	}
	return result, nil
}
