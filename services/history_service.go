package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wakeup-cafe/models"
)

// MoneyAnomaly records one order line whose total could not be parsed.
// The line still contributes its quantity; its price is counted as 0.
type MoneyAnomaly struct {
	OrderID     int
	ProductName string
	Raw         string
}

func (a MoneyAnomaly) String() string {
	return fmt.Sprintf("order %d, product %q: unparseable total %q", a.OrderID, a.ProductName, a.Raw)
}

// ParseMoney parses a price string from the history feed. A leading dollar
// sign is tolerated; anything else that is not a finite number is an error.
func ParseMoney(s string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if trimmed == "" {
		return 0, fmt.Errorf("empty price")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("price %q is not finite", s)
	}
	return v, nil
}

// FlattenOrders expands order envelopes into one line per contained
// product, tagged with the envelope's id and date.
func FlattenOrders(envelopes []models.RawOrder) []models.RawOrderLine {
	var lines []models.RawOrderLine
	for _, env := range envelopes {
		for _, item := range env.Orders {
			lines = append(lines, models.RawOrderLine{
				OrderID:     env.OrderID,
				Date:        env.Date,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				TotalPrice:  item.TotalPrice,
			})
		}
	}
	return lines
}

// AggregateOrderLines folds flat order lines into per-order summaries.
// Output order follows the first occurrence of each order id. Every input
// line is preserved as its own products entry, even when the product name
// repeats within an order. Lines with unparseable totals are counted as 0
// and reported, instead of poisoning the sum.
//
// The fold is pure: same input, same output, no I/O.
func AggregateOrderLines(lines []models.RawOrderLine) ([]models.AggregatedOrder, []MoneyAnomaly) {
	orders := []models.AggregatedOrder{}
	index := map[int]int{}
	var anomalies []MoneyAnomaly

	for _, line := range lines {
		price, err := ParseMoney(line.TotalPrice)
		if err != nil {
			price = 0
			anomalies = append(anomalies, MoneyAnomaly{
				OrderID:     line.OrderID,
				ProductName: line.ProductName,
				Raw:         line.TotalPrice,
			})
		}

		product := models.OrderProduct{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			TotalPrice:  line.TotalPrice,
		}

		if i, ok := index[line.OrderID]; ok {
			orders[i].Quantity += line.Quantity
			orders[i].TotalPrice += price
			orders[i].Products = append(orders[i].Products, product)
			continue
		}

		index[line.OrderID] = len(orders)
		orders = append(orders, models.AggregatedOrder{
			ID:         line.OrderID,
			Date:       line.Date,
			Quantity:   line.Quantity,
			TotalPrice: price,
			Products:   []models.OrderProduct{product},
		})
	}

	return orders, anomalies
}
