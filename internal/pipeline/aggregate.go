package pipeline

import (
	"sort"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

type aggregateConfig struct {
	transform   func(key string) string
	filter      func(key string) bool
	sortByCount bool
}

type Option func(*aggregateConfig)

// WithLabelTransform sets the display text of each entry. It never changes counts.
func WithLabelTransform(f func(key string) string) Option {
	return func(c *aggregateConfig) { c.transform = f }
}

// WithFilter keeps only entries whose key satisfies f.
func WithFilter(f func(key string) bool) Option {
	return func(c *aggregateConfig) { c.filter = f }
}

// SortByCount orders entries by descending count. Ties keep first-seen order.
func SortByCount() Option {
	return func(c *aggregateConfig) { c.sortByCount = true }
}

// Aggregate counts decoded labels across all sessions. Entries are ordered by
// the first time their label was seen unless SortByCount is given.
func Aggregate(ds entity.DecodedDataset, opts ...Option) entity.AggregatedSeries {
	var cfg aggregateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[string]int)
	series := entity.AggregatedSeries{}
	for _, s := range ds.Sessions {
		for _, in := range s.Interactions {
			if i, ok := index[in.Label]; ok {
				series[i].Count++
				continue
			}
			index[in.Label] = len(series)
			series = append(series, entity.SeriesEntry{Key: in.Label, Label: in.Label, Count: 1})
		}
	}

	out := make(entity.AggregatedSeries, 0, len(series))
	for _, e := range series {
		if cfg.filter != nil && !cfg.filter(e.Key) {
			continue
		}
		if cfg.transform != nil {
			e.Label = cfg.transform(e.Key)
		}
		out = append(out, e)
	}

	if cfg.sortByCount {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	}

	return out
}

// ClickSeries is every label, with add-to-cart labels shown as "<product> Cart".
func ClickSeries(ds entity.DecodedDataset, catalog Catalog) entity.AggregatedSeries {
	return Aggregate(ds, WithLabelTransform(catalog.CartLabel))
}

// ProductSeries counts add-to-cart clicks per product. A non-empty category
// keeps only products that resolve to exactly that category.
func ProductSeries(ds entity.DecodedDataset, catalog Catalog, category string) entity.AggregatedSeries {
	return Aggregate(ds,
		WithFilter(catalog.ProductFilter(category)),
		WithLabelTransform(catalog.ProductName),
	)
}
