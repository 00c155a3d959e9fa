package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shoporder/internal/core/domain"
	"shoporder/internal/port"
)

// MySQLAdapter implements port.Store on MySQL. Overselling is prevented by
// the conditional decrement inside the enclosing transaction; the row lock it
// takes serializes concurrent decrements on the same product.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) InTx(ctx context.Context, fn func(tx port.OrderTx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&mysqlTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_name, order_date, total_price, created_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&o.ID, &o.CustomerName, &o.OrderDate, &o.TotalPrice, &o.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return o, domain.ErrOrderNotFound
	}
	if err != nil {
		return o, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, quantity, price, subtotal
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return o, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price, &item.Subtotal); err != nil {
			return o, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return o, fmt.Errorf("iterate order items: %w", err)
	}

	return o, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type mysqlTx struct {
	tx *sql.Tx
}

func (m *mysqlTx) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := m.tx.QueryRowContext(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *mysqlTx) DecrementStock(ctx context.Context, productID string, quantity int) (bool, error) {
	result, err := m.tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?, updated_at = NOW()
		WHERE id = ? AND stock >= ?`,
		quantity, productID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("update stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (m *mysqlTx) InsertOrder(ctx context.Context, order domain.Order) error {
	_, err := m.tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, order_date, total_price, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.CustomerName, order.OrderDate, order.TotalPrice, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = m.tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, subtotal)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity, item.Price, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}
