package repositories

import (
	"context"
	"fmt"
	"time"

	"wakeup-cafe/models"
)

// OrderRepository is the fetch-and-submit collaborator behind the cart and
// the history view: pending cart lines in, checkout out, order lines back.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FetchPendingOrders returns the user's cart rows joined with a snapshot
// of the product's current name and price.
func (r *OrderRepository) FetchPendingOrders(ctx context.Context, userID int) ([]models.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, COALESCE(p.image_url, '')
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.id`

	rows, err := models.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch pending orders: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var id, productID int
		var name, imageURL string
		var price float64
		if err := rows.Scan(&id, &productID, &name, &price, &imageURL); err != nil {
			return nil, fmt.Errorf("scan pending order: %w", err)
		}

		line, err := models.NewCartLine(id, productID, name, price)
		if err != nil {
			return nil, fmt.Errorf("cart line %d: %w", id, err)
		}
		line.ImageURL = imageURL
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// SubmitCheckout writes the order and its items in one transaction and
// clears the submitted cart rows. Returns the confirmation message.
func (r *OrderRepository) SubmitCheckout(ctx context.Context, userID int, payload []models.CheckoutLine) (string, error) {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback(ctx)

	total := 0.0
	for _, line := range payload {
		total += line.ProductPrice * float64(line.Quantity)
	}

	now := time.Now()
	var orderID int
	err = tx.QueryRow(ctx,
		"INSERT INTO orders (user_id, total, order_date, created_at, updated_at) VALUES ($1,$2,$3,$4,$5) RETURNING id",
		userID, total, now, now, now).Scan(&orderID)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	for _, line := range payload {
		_, err = tx.Exec(ctx,
			"INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)",
			orderID, line.ProductID, line.ProductName, line.Quantity,
			line.ProductPrice, line.ProductPrice*float64(line.Quantity), now)
		if err != nil {
			return "", fmt.Errorf("create order item: %w", err)
		}

		_, err = tx.Exec(ctx, "DELETE FROM cart_items WHERE id=$1 AND user_id=$2", line.ID, userID)
		if err != nil {
			return "", fmt.Errorf("clear cart item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit checkout: %w", err)
	}

	return fmt.Sprintf("Order #%d placed successfully", orderID), nil
}

// FetchOrderHistory returns the user's past orders as flat per-product
// lines, newest order first. Totals come back as text the way the legacy
// feed shipped them; aggregation parses them.
func (r *OrderRepository) FetchOrderHistory(ctx context.Context, userID int) ([]models.RawOrderLine, error) {
	query := `
		SELECT o.id, o.order_date, oi.product_name, oi.quantity, oi.total_price::text
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC, oi.id`

	rows, err := models.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch order history: %w", err)
	}
	defer rows.Close()

	lines := []models.RawOrderLine{}
	for rows.Next() {
		var line models.RawOrderLine
		if err := rows.Scan(&line.OrderID, &line.Date.Time, &line.ProductName, &line.Quantity, &line.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
