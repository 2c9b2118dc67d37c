package product

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type countingStore struct {
	Store
	single, batch int
	err           error
}

func (c *countingStore) GetProductByID(ctx context.Context, id string) (entity.Product, bool, error) {
	c.single++
	if c.err != nil {
		return entity.Product{}, false, c.err
	}
	return c.Store.GetProductByID(ctx, id)
}

func (c *countingStore) GetProductsByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	c.batch++
	if c.err != nil {
		return nil, c.err
	}
	return c.Store.GetProductsByIDs(ctx, ids)
}

func (c *countingStore) GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.Store.GetProductsByCategory(ctx, category)
}

type brokenCache struct{}

func (brokenCache) CacheProduct(context.Context, entity.Product, time.Duration) error {
	return errors.New("cache down")
}

func (brokenCache) GetProduct(context.Context, string) (entity.Product, error) {
	return entity.Product{}, errors.New("cache down")
}

func (brokenCache) InvalidateProduct(context.Context, string) error {
	return errors.New("cache down")
}

func newStore(t *testing.T) *countingStore {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	db.MustExec(`CREATE TABLE products (id TEXT PRIMARY KEY, name TEXT NOT NULL, category TEXT NOT NULL)`)

	repo := repository.NewProductRepository(db)
	for _, p := range []entity.Product{
		{ID: "p1", Name: "Shoes", Category: "Clothing"},
		{ID: "p2", Name: "Headphones", Category: "Electronics"},
	} {
		if err := repo.UpsertProduct(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	return &countingStore{Store: repo}
}

func newCache(t *testing.T) *redis.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := redis.NewRedisService(context.Background(), redis.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestResolve_ReadThroughCache(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, newCache(t), time.Minute, discard)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := svc.Resolve(ctx, "p1")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if p.Name != "Shoes" {
			t.Errorf("got %+v", p)
		}
	}
	if store.single != 1 {
		t.Errorf("store hit %d times, want 1", store.single)
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewProductService(newStore(t), nil, time.Minute, discard)

	_, err := svc.Resolve(context.Background(), "p9")
	if !errors.Is(err, shared.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
	if errors.Is(err, shared.ErrUpstreamFetch) {
		t.Error("a missing product is not an upstream failure")
	}
}

func TestResolve_StoreFailure(t *testing.T) {
	store := newStore(t)
	store.err = errors.New("connection reset")
	svc := NewProductService(store, nil, time.Minute, discard)

	_, err := svc.Resolve(context.Background(), "p1")
	var upstream *shared.UpstreamError
	if !errors.As(err, &upstream) || upstream.Collaborator != collaborator {
		t.Fatalf("expected product store UpstreamError, got %v", err)
	}
}

func TestResolve_BrokenCacheFallsBackToStore(t *testing.T) {
	svc := NewProductService(newStore(t), brokenCache{}, time.Minute, discard)

	p, err := svc.Resolve(context.Background(), "p2")
	if err != nil {
		t.Fatalf("cache failure must not fail the lookup: %v", err)
	}
	if p.Category != "Electronics" {
		t.Errorf("got %+v", p)
	}
}

func TestResolveAll(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, newCache(t), time.Minute, discard)
	ctx := context.Background()

	catalog, err := svc.ResolveAll(ctx, []string{"p1", "p2", "p9"})
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	if len(catalog) != 2 {
		t.Errorf("expected 2 resolved products, got %v", catalog)
	}
	if _, ok := catalog.Lookup("p9"); ok {
		t.Error("p9 should be unresolved")
	}

	// resolved products come from the cache now, only p9 goes to the store
	if _, err := svc.ResolveAll(ctx, []string{"p1", "p2", "p9"}); err != nil {
		t.Fatal(err)
	}
	if store.batch != 2 {
		t.Errorf("expected 2 batch lookups, got %d", store.batch)
	}

	if _, err := svc.ResolveAll(ctx, []string{"p1", "p2"}); err != nil {
		t.Fatal(err)
	}
	if store.batch != 2 {
		t.Errorf("fully cached lookup should skip the store, got %d batch calls", store.batch)
	}
}

func TestResolveAll_DuplicateIDs(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, nil, time.Minute, discard)

	catalog, err := svc.ResolveAll(context.Background(), []string{"p1", "p1", "p9", "p9"})
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog) != 1 || store.batch != 1 {
		t.Errorf("got %d products in %d batch calls", len(catalog), store.batch)
	}
}

func TestSave_InvalidatesCache(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, newCache(t), time.Minute, discard)
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(ctx, entity.Product{ID: "p1", Name: "Running Shoes", Category: "Sports & Leisure"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := svc.Resolve(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Running Shoes" || p.Category != "Sports & Leisure" {
		t.Errorf("stale product after save: %+v", p)
	}
	if store.single != 2 {
		t.Errorf("expected a store read after invalidation, got %d", store.single)
	}
}

func TestSave_BrokenCacheStillSaves(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, brokenCache{}, time.Minute, discard)

	if err := svc.Save(context.Background(), entity.Product{ID: "p3", Name: "Lamp", Category: "Home & Furniture"}); err != nil {
		t.Fatalf("cache failure must not fail the save: %v", err)
	}
	if p, err := svc.Resolve(context.Background(), "p3"); err != nil || p.Name != "Lamp" {
		t.Errorf("got %+v, %v", p, err)
	}
}

func TestResolveAll_Empty(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, nil, time.Minute, discard)

	catalog, err := svc.ResolveAll(context.Background(), nil)
	if err != nil || len(catalog) != 0 {
		t.Errorf("got %v, %v", catalog, err)
	}
	if store.batch != 0 {
		t.Error("no ids should not query the store")
	}
}

func TestResolveAll_StoreFailure(t *testing.T) {
	store := newStore(t)
	store.err = errors.New("timeout")
	svc := NewProductService(store, nil, time.Minute, discard)

	if _, err := svc.ResolveAll(context.Background(), []string{"p1"}); !errors.Is(err, shared.ErrUpstreamFetch) {
		t.Errorf("expected ErrUpstreamFetch, got %v", err)
	}
}

func TestProductsInCategory(t *testing.T) {
	store := newStore(t)
	svc := NewProductService(store, nil, time.Minute, discard)
	ctx := context.Background()

	products, err := svc.ProductsInCategory(ctx, "Electronics")
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].ID != "p2" {
		t.Errorf("got %+v", products)
	}

	products, err = svc.ProductsInCategory(ctx, "Garden & DIY")
	if err != nil || products == nil || len(products) != 0 {
		t.Errorf("empty category: got %v, %v", products, err)
	}

	if _, err := svc.ProductsInCategory(ctx, "Toys"); !errors.Is(err, shared.ErrUnresolvedReference) {
		t.Errorf("unknown category: expected ErrUnresolvedReference, got %v", err)
	}

	store.err = errors.New("down")
	if _, err := svc.ProductsInCategory(ctx, "Clothing"); !errors.Is(err, shared.ErrUpstreamFetch) {
		t.Errorf("expected ErrUpstreamFetch, got %v", err)
	}
}

func TestCategories_IsACopy(t *testing.T) {
	svc := NewProductService(newStore(t), nil, time.Minute, discard)
	cats := svc.Categories()
	cats[0] = "changed"
	if svc.Categories()[0] != "Electronics" {
		t.Error("Categories must not expose the shared slice")
	}
}
