package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wakeup-cafe/models"
	"wakeup-cafe/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	pending   []models.CartLine
	history   []models.RawOrderLine
	submitErr error
	submitted [][]models.CheckoutLine
}

func (f *fakeOrderRepo) FetchPendingOrders(ctx context.Context, userID int) ([]models.CartLine, error) {
	return f.pending, nil
}

func (f *fakeOrderRepo) SubmitCheckout(ctx context.Context, userID int, payload []models.CheckoutLine) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, payload)
	return "Order #1 placed successfully", nil
}

func (f *fakeOrderRepo) FetchOrderHistory(ctx context.Context, userID int) ([]models.RawOrderLine, error) {
	return f.history, nil
}

func newTestRouter(repo *fakeOrderRepo) (*gin.Engine, *services.CartManager) {
	gin.SetMode(gin.TestMode)

	carts := services.NewCartManager()
	orderCtrl := NewOrderController(carts, repo)
	checkoutCtrl := NewCheckoutController(carts, repo, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", 42)
		c.Next()
	})
	router.GET("/api/orders", orderCtrl.GetOrders)
	router.PATCH("/api/orders/:id/increment", orderCtrl.IncrementOrder)
	router.PATCH("/api/orders/:id/decrement", orderCtrl.DecrementOrder)
	router.DELETE("/api/orders/:id", orderCtrl.DeleteOrder)
	router.POST("/api/checkout", checkoutCtrl.Checkout)
	router.GET("/api/checkout", checkoutCtrl.GetHistory)
	return router, carts
}

func do(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutFlow(t *testing.T) {
	repo := &fakeOrderRepo{
		pending: []models.CartLine{
			{ID: 1, ProductID: 10, ProductName: "Latte", ProductPrice: 4.50},
			{ID: 2, ProductID: 11, ProductName: "Muffin", ProductPrice: 3.00},
		},
	}
	router, _ := newTestRouter(repo)

	// load the cart, bump one quantity
	assert.Equal(t, 200, do(t, router, "GET", "/api/orders").Code)
	assert.Equal(t, 200, do(t, router, "PATCH", "/api/orders/1/increment").Code)

	w := do(t, router, "POST", "/api/checkout")
	require.Equal(t, 201, w.Code)

	require.Len(t, repo.submitted, 1)
	payload := repo.submitted[0]
	require.Len(t, payload, 2)
	assert.Equal(t, 2, payload[0].Quantity)
	assert.Equal(t, 1, payload[1].Quantity)

	// cart stays empty even though pending rows are still fetchable
	w = do(t, router, "GET", "/api/orders")
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data struct {
			Items      []json.RawMessage `json:"items"`
			CheckedOut bool              `json:"checkedOut"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Items)
	assert.True(t, resp.Data.CheckedOut)
}

func TestCheckoutEmptyCartReturns400(t *testing.T) {
	repo := &fakeOrderRepo{}
	router, _ := newTestRouter(repo)

	w := do(t, router, "POST", "/api/checkout")
	assert.Equal(t, 400, w.Code)
	assert.Empty(t, repo.submitted)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	repo := &fakeOrderRepo{
		pending: []models.CartLine{
			{ID: 1, ProductID: 10, ProductName: "Latte", ProductPrice: 4.50},
		},
		submitErr: errors.New("db down"),
	}
	router, carts := newTestRouter(repo)

	do(t, router, "GET", "/api/orders")

	w := do(t, router, "POST", "/api/checkout")
	assert.Equal(t, 500, w.Code)

	cart := carts.Cart(42)
	assert.False(t, cart.HasCheckedOut())
	assert.Len(t, cart.Lines(), 1)
}

func TestGetHistoryAggregates(t *testing.T) {
	date := models.OrderDate{Time: time.Date(2024, 11, 5, 9, 30, 0, 0, time.UTC)}
	repo := &fakeOrderRepo{
		history: []models.RawOrderLine{
			{OrderID: 1, Date: date, ProductName: "Latte", Quantity: 2, TotalPrice: "8.00"},
			{OrderID: 1, Date: date, ProductName: "Muffin", Quantity: 1, TotalPrice: "3.00"},
			{OrderID: 2, Date: date, ProductName: "Tea", Quantity: 1, TotalPrice: "2.50"},
		},
	}
	router, _ := newTestRouter(repo)

	w := do(t, router, "GET", "/api/checkout")
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data []models.AggregatedOrder `json:"data"`
		Meta struct {
			TotalOrders    int `json:"totalOrders"`
			MalformedLines int `json:"malformedLines"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Data[0].ID)
	assert.Equal(t, 3, resp.Data[0].Quantity)
	assert.InDelta(t, 11.00, resp.Data[0].TotalPrice, 0.001)
	assert.Len(t, resp.Data[0].Products, 2)
	assert.Equal(t, 2, resp.Meta.TotalOrders)
	assert.Equal(t, 0, resp.Meta.MalformedLines)
}
