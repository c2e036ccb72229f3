package repositories

import (
	"context"
	"time"

	"wakeup-cafe/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetAllProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := models.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, description, price, stock, COALESCE(image_url, ''), is_active, created_at, updated_at
	          FROM products WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := models.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT id, name, description, price, stock, COALESCE(image_url, ''), is_active, created_at, updated_at
	          FROM products WHERE id = $1`

	var p models.Product
	err := models.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $7)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	return models.DB.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.Stock, product.ImageURL, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}
