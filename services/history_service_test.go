package services

import (
	"testing"
	"time"

	"wakeup-cafe/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyDate = models.OrderDate{Time: time.Date(2024, 11, 5, 9, 30, 0, 0, time.UTC)}

func TestAggregateMergesLinesOfSameOrder(t *testing.T) {
	lines := []models.RawOrderLine{
		{OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
		{OrderID: 1, Date: historyDate, ProductName: "Muffin", Quantity: 1, TotalPrice: "3.00"},
	}

	orders, anomalies := AggregateOrderLines(lines)

	require.Empty(t, anomalies)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, historyDate, order.Date)
	assert.Equal(t, 3, order.Quantity)
	assert.InDelta(t, 11.00, order.TotalPrice, 0.001)
	assert.Equal(t, []models.OrderProduct{
		{ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
		{ProductName: "Muffin", Quantity: 1, TotalPrice: "3.00"},
	}, order.Products)
}

func TestAggregatePreservesFirstOccurrenceOrder(t *testing.T) {
	lines := []models.RawOrderLine{
		{OrderID: 5, Date: historyDate, ProductName: "Mocha", Quantity: 1, TotalPrice: "5.00"},
		{OrderID: 2, Date: historyDate, ProductName: "Tea", Quantity: 1, TotalPrice: "2.50"},
		{OrderID: 5, Date: historyDate, ProductName: "Scone", Quantity: 2, TotalPrice: "6.00"},
		{OrderID: 9, Date: historyDate, ProductName: "Latte", Quantity: 1, TotalPrice: "4.00"},
	}

	orders, _ := AggregateOrderLines(lines)

	require.Len(t, orders, 3)
	assert.Equal(t, []int{5, 2, 9}, []int{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestAggregateIsTotalPreserving(t *testing.T) {
	lines := []models.RawOrderLine{
		{OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
		{OrderID: 2, Date: historyDate, ProductName: "Tea", Quantity: 3, TotalPrice: "7.50"},
		{OrderID: 1, Date: historyDate, ProductName: "Muffin", Quantity: 1, TotalPrice: "3.00"},
		{OrderID: 3, Date: historyDate, ProductName: "Mocha", Quantity: 4, TotalPrice: "20.00"},
	}

	orders, anomalies := AggregateOrderLines(lines)
	require.Empty(t, anomalies)

	gotQty, gotTotal, gotProducts := 0, 0.0, 0
	for _, o := range orders {
		gotQty += o.Quantity
		gotTotal += o.TotalPrice
		gotProducts += len(o.Products)
	}

	assert.Equal(t, 10, gotQty)
	assert.InDelta(t, 38.50, gotTotal, 0.001)
	assert.Equal(t, len(lines), gotProducts)
	assert.Len(t, orders, 3)
}

func TestAggregateKeepsDuplicateProductNamesSeparate(t *testing.T) {
	lines := []models.RawOrderLine{
		{OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 1, TotalPrice: "4.00"},
		{OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
	}

	orders, _ := AggregateOrderLines(lines)

	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Products, 2)
	assert.Equal(t, 3, orders[0].Quantity)
}

func TestAggregateEmptyInput(t *testing.T) {
	orders, anomalies := AggregateOrderLines(nil)

	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.Empty(t, anomalies)
}

func TestAggregateZeroFillsMalformedTotals(t *testing.T) {
	lines := []models.RawOrderLine{
		{OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
		{OrderID: 1, Date: historyDate, ProductName: "Mystery", Quantity: 1, TotalPrice: "oops"},
	}

	orders, anomalies := AggregateOrderLines(lines)

	require.Len(t, orders, 1)
	assert.InDelta(t, 8.00, orders[0].TotalPrice, 0.001)
	assert.Equal(t, 3, orders[0].Quantity)
	assert.Len(t, orders[0].Products, 2)

	require.Len(t, anomalies, 1)
	assert.Equal(t, 1, anomalies[0].OrderID)
	assert.Equal(t, "oops", anomalies[0].Raw)
}

func TestFlattenOrders(t *testing.T) {
	envelopes := []models.RawOrder{
		{
			OrderID: 1,
			Date:    historyDate,
			Orders: []models.RawOrderItem{
				{ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
				{ProductName: "Muffin", Quantity: 1, TotalPrice: "3.00"},
			},
		},
		{
			OrderID: 2,
			Date:    historyDate,
			Orders: []models.RawOrderItem{
				{ProductName: "Tea", Quantity: 1, TotalPrice: "2.50"},
			},
		},
	}

	lines := FlattenOrders(envelopes)

	require.Len(t, lines, 3)
	assert.Equal(t, models.RawOrderLine{
		OrderID: 1, Date: historyDate, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00",
	}, lines[0])
	assert.Equal(t, 2, lines[2].OrderID)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"8.00", 8.00, false},
		{" 3.5 ", 3.5, false},
		{"$4.25", 4.25, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 0.0001, "input %q", tt.in)
	}
}
