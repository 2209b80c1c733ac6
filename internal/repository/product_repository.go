package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blackat123/prosetup/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductOrder selects the ordering of a full product listing.
type ProductOrder string

const (
	// OrderByNameAsc is the read-only listing order.
	OrderByNameAsc ProductOrder = "name ASC"
	// OrderByCreatedDesc is the management listing order.
	OrderByCreatedDesc ProductOrder = "created_at DESC"
)

// ProductRecord carries the editable columns of a product row.
type ProductRecord struct {
	Name      string
	UnitPrice int64
	Quantity  int64
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, order ProductOrder) ([]domain.Product, error)
	Insert(ctx context.Context, rec ProductRecord) error
	Update(ctx context.Context, id int64, rec ProductRecord) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves every product row in the requested order. There is no
// pagination: both views always operate on the full row set.
func (r *productRepository) List(ctx context.Context, order ProductOrder) ([]domain.Product, error) {
	// Ordering is restricted to the two known clauses to keep the ORDER BY
	// out of parameter position safely.
	if order != OrderByNameAsc && order != OrderByCreatedDesc {
		order = OrderByCreatedDesc
	}

	query := fmt.Sprintf(`
		SELECT id, name, unit_price, quantity, created_at
		FROM products
		ORDER BY %s
	`, order)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.UnitPrice,
			&product.Quantity,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Insert creates a new product row; id and created_at are assigned by the
// store.
func (r *productRepository) Insert(ctx context.Context, rec ProductRecord) error {
	query := `
		INSERT INTO products (name, unit_price, quantity)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, rec.Name, rec.UnitPrice, rec.Quantity)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update rewrites the editable columns of the row with the given id using
// parameterized queries.
func (r *productRepository) Update(ctx context.Context, id int64, rec ProductRecord) error {
	query := `
		UPDATE products
		SET name = $2, unit_price = $3, quantity = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, rec.Name, rec.UnitPrice, rec.Quantity)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes the row with the given id.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a single product row by id.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, unit_price, quantity, created_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.UnitPrice,
		&product.Quantity,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}
