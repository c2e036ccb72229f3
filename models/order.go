package models

import "time"

// OrderDate wraps the timestamp the history endpoint ships as {"time": ...}.
type OrderDate struct {
	Time time.Time `json:"time"`
}

// RawOrder is one order envelope from the history feed: the order id, its
// date, and the product lines that belong to it.
type RawOrder struct {
	OrderID int            `json:"orderId"`
	Date    OrderDate      `json:"date"`
	Orders  []RawOrderItem `json:"orders"`
}

// RawOrderItem is a single product line inside an envelope. TotalPrice is
// kept as the string the feed delivers; parsing happens during aggregation.
type RawOrderItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
}

// RawOrderLine is a flattened product line tagged with its parent order.
type RawOrderLine struct {
	OrderID     int       `json:"orderId"`
	Date        OrderDate `json:"date"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	TotalPrice  string    `json:"totalPrice"`
}

// AggregatedOrder is one order summary for history display: totals merged
// across every line sharing the order id, with each contributing line kept
// as its own products entry.
type AggregatedOrder struct {
	ID         int            `json:"id"`
	Date       OrderDate      `json:"date"`
	Quantity   int            `json:"quantity"`
	TotalPrice float64        `json:"totalPrice"`
	Products   []OrderProduct `json:"products"`
}

type OrderProduct struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
}
