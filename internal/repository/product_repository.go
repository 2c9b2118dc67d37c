package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProductByID returns found=false when the product does not exist.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (entity.Product, bool, error) {
	query := r.db.Rebind(`SELECT id, name, category FROM products WHERE id = ?`)

	var product entity.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, false, nil
		}
		return entity.Product{}, false, err
	}

	return product, true, nil
}

func (r *ProductRepository) GetProductsByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, category FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	products := []entity.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	query := r.db.Rebind(`SELECT id, name, category FROM products WHERE category = ? ORDER BY name`)

	products := []entity.Product{}
	if err := r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) UpsertProduct(ctx context.Context, product entity.Product) error {
	query := r.db.Rebind(`INSERT INTO products (id, name, category) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, category = excluded.category`)

	_, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Category)
	return err
}
