package pipeline

import (
	"strings"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

const (
	AddToCartPrefix = "add-to-cart-"
	cartSuffix      = " Cart"
)

// ProductID extracts the product id of an "add-to-cart-<productId>" label.
func ProductID(label string) (string, bool) {
	if !strings.HasPrefix(label, AddToCartPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(label, AddToCartPrefix)
	return id, id != ""
}

// ReferencedProductIDs lists the distinct product ids in first-seen order.
func ReferencedProductIDs(ds entity.DecodedDataset) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range ds.Sessions {
		for _, in := range s.Interactions {
			id, ok := ProductID(in.Label)
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Catalog is a snapshot of resolved products keyed by product id. Ids missing
// from it are unresolved.
type Catalog map[string]entity.Product

func (c Catalog) Lookup(id string) (entity.Product, bool) {
	p, ok := c[id]
	return p, ok
}

// CartLabel decorates add-to-cart labels and passes others through.
func (c Catalog) CartLabel(key string) string {
	id, ok := ProductID(key)
	if !ok {
		return key
	}
	if p, found := c.Lookup(id); found {
		return p.Name + cartSuffix
	}
	return UnknownLabel
}

func (c Catalog) ProductName(key string) string {
	id, ok := ProductID(key)
	if !ok {
		return key
	}
	if p, found := c.Lookup(id); found {
		return p.Name
	}
	return UnknownLabel
}

// ProductFilter keeps add-to-cart labels. With a category set, unresolved
// products and products of other categories are dropped.
func (c Catalog) ProductFilter(category string) func(key string) bool {
	return func(key string) bool {
		id, ok := ProductID(key)
		if !ok {
			return false
		}
		if category == "" {
			return true
		}
		p, found := c.Lookup(id)
		return found && p.Category == category
	}
}
