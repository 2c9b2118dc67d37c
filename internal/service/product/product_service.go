package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/pipeline"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/dinerozz/datahive-backend/internal/shared"
)

const collaborator = "product store"

type Store interface {
	GetProductByID(ctx context.Context, id string) (entity.Product, bool, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error)
	UpsertProduct(ctx context.Context, product entity.Product) error
}

type Cache interface {
	CacheProduct(ctx context.Context, product entity.Product, ttl time.Duration) error
	GetProduct(ctx context.Context, id string) (entity.Product, error)
	InvalidateProduct(ctx context.Context, id string) error
}

// ProductService resolves product ids to name and category. The cache is
// optional; cache errors are logged and the store is used instead.
type ProductService struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewProductService(store Store, cache Cache, ttl time.Duration, logger *slog.Logger) *ProductService {
	return &ProductService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "product"),
	}
}

func (s *ProductService) Categories() []string {
	out := make([]string, len(entity.Categories))
	copy(out, entity.Categories)
	return out
}

// Resolve returns ErrUnresolvedReference when the product does not exist.
func (s *ProductService) Resolve(ctx context.Context, id string) (entity.Product, error) {
	if p, ok := s.fromCache(ctx, id); ok {
		return p, nil
	}

	p, found, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return entity.Product{}, shared.NewUpstreamError(collaborator, "lookup "+id, err)
	}
	if !found {
		return entity.Product{}, fmt.Errorf("product %s: %w", id, shared.ErrUnresolvedReference)
	}

	s.toCache(ctx, p)
	return p, nil
}

// ProductsInCategory lists the products of one of the fixed categories, by name.
func (s *ProductService) ProductsInCategory(ctx context.Context, category string) ([]entity.Product, error) {
	if !slices.Contains(entity.Categories, category) {
		return nil, fmt.Errorf("category %q: %w", category, shared.ErrUnresolvedReference)
	}

	products, err := s.store.GetProductsByCategory(ctx, category)
	if err != nil {
		return nil, shared.NewUpstreamError(collaborator, "list "+category, err)
	}
	return products, nil
}

// ResolveAll looks up every id once. Ids that do not resolve are left out of
// the catalog.
func (s *ProductService) ResolveAll(ctx context.Context, ids []string) (pipeline.Catalog, error) {
	catalog := make(pipeline.Catalog, len(ids))
	seen := make(map[string]bool, len(ids))

	var missing []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := s.fromCache(ctx, id); ok {
			catalog[id] = p
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return catalog, nil
	}

	products, err := s.store.GetProductsByIDs(ctx, missing)
	if err != nil {
		return nil, shared.NewUpstreamError(collaborator, "batch lookup", err)
	}
	for _, p := range products {
		catalog[p.ID] = p
		s.toCache(ctx, p)
	}

	if unresolved := len(seen) - len(catalog); unresolved > 0 {
		s.logger.Debug("unresolved product references", slog.Int("count", unresolved))
	}
	return catalog, nil
}

// Save writes the product and drops its cached copy so the next lookup
// reads the new name and category.
func (s *ProductService) Save(ctx context.Context, p entity.Product) error {
	if err := s.store.UpsertProduct(ctx, p); err != nil {
		return shared.NewUpstreamError(collaborator, "save "+p.ID, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, p.ID); err != nil {
			s.logger.Warn("failed to invalidate cached product", slog.String("product_id", p.ID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *ProductService) fromCache(ctx context.Context, id string) (entity.Product, bool) {
	if s.cache == nil {
		return entity.Product{}, false
	}
	p, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("product cache read failed", slog.String("product_id", id), slog.Any("error", err))
		}
		return entity.Product{}, false
	}
	return p, true
}

func (s *ProductService) toCache(ctx context.Context, p entity.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheProduct(ctx, p, s.ttl); err != nil {
		s.logger.Warn("failed to cache product", slog.String("product_id", p.ID), slog.Any("error", err))
	}
}
