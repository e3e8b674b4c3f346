package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dashboard/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, created_at
		FROM products
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// Insert stores p and returns the id the database assigned.
func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `INSERT INTO products (name, description, price) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading product id: %w", err)
	}

	return int(id), nil
}
