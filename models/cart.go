package models

import "errors"

var (
	ErrInvalidPrice    = errors.New("product price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartLine is one pending order item. Name and price are snapshots taken
// when the line was added; the live product row may change afterwards.
type CartLine struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	ImageURL     string  `json:"image_url,omitempty"`
}

func NewCartLine(id, productID int, productName string, productPrice float64) (CartLine, error) {
	if productPrice < 0 {
		return CartLine{}, ErrInvalidPrice
	}
	return CartLine{
		ID:           id,
		ProductID:    productID,
		ProductName:  productName,
		ProductPrice: productPrice,
	}, nil
}

// CheckoutLine is the wire shape posted to the order submission endpoint,
// one entry per cart line with its final quantity.
type CheckoutLine struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	Quantity     int     `json:"quantity"`
}

func NewCheckoutLine(line CartLine, quantity int) (CheckoutLine, error) {
	if quantity < 1 {
		return CheckoutLine{}, ErrInvalidQuantity
	}
	return CheckoutLine{
		ID:           line.ID,
		ProductID:    line.ProductID,
		ProductName:  line.ProductName,
		ProductPrice: line.ProductPrice,
		Quantity:     quantity,
	}, nil
}
