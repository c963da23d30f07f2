package inventory

import (
	"context"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Summary aggregates stock figures across the whole catalog.
type Summary struct {
	TotalProducts int     `json:"total_products"`
	TotalStock    int     `json:"total_stock"`
	OutOfStock    int     `json:"out_of_stock"`
	MeanStock     float64 `json:"mean_stock"`
	MedianStock   float64 `json:"median_stock"`
}

// Summarize computes catalog-wide stock statistics.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	products, err := s.products.List(ctx, "", "")
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	summary := &Summary{TotalProducts: len(products)}
	if len(products) == 0 {
		return summary, nil
	}

	quantities := make(stats.Float64Data, 0, len(products))
	for _, product := range products {
		summary.TotalStock += product.Stock
		if product.Stock == 0 {
			summary.OutOfStock++
		}
		quantities = append(quantities, float64(product.Stock))
	}

	if mean, err := stats.Mean(quantities); err == nil {
		summary.MeanStock = mean
	}
	if median, err := stats.Median(quantities); err == nil {
		summary.MedianStock = median
	}
	return summary, nil
}
