package services

import (
	"context"
	"errors"
	"testing"

	"wakeup-cafe/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []models.CartLine {
	return []models.CartLine{
		{ID: 1, ProductID: 10, ProductName: "Latte", ProductPrice: 4.50},
		{ID: 2, ProductID: 11, ProductName: "Muffin", ProductPrice: 3.00},
		{ID: 3, ProductID: 12, ProductName: "Espresso", ProductPrice: 2.25},
	}
}

func loadedStore(t *testing.T) *CartStore {
	t.Helper()
	s := NewCartStore()
	require.True(t, s.Load(s.Generation(), testLines()))
	return s
}

func TestLoadInitializesQuantitiesToOne(t *testing.T) {
	s := loadedStore(t)

	assert.Len(t, s.Lines(), 3)
	for _, id := range []int{1, 2, 3} {
		q, ok := s.Quantity(id)
		require.True(t, ok)
		assert.Equal(t, 1, q)
	}
}

func TestIncrementAndLineTotal(t *testing.T) {
	s := loadedStore(t)

	s.Increment(1)
	s.Increment(1)

	q, _ := s.Quantity(1)
	assert.Equal(t, 3, q)
	assert.Equal(t, 13.50, s.LineTotal(1))
}

func TestIncrementUnknownIDIsNoOp(t *testing.T) {
	s := loadedStore(t)

	s.Increment(99)

	_, ok := s.Quantity(99)
	assert.False(t, ok)
	assert.Equal(t, 9.75, s.CartTotal())
}

func TestDecrementNeverGoesBelowOne(t *testing.T) {
	s := loadedStore(t)

	for i := 0; i < 10; i++ {
		s.Decrement(2)
	}

	q, _ := s.Quantity(2)
	assert.Equal(t, 1, q)
}

func TestRemoveDeletesLineAndQuantityTogether(t *testing.T) {
	s := loadedStore(t)

	s.Remove(2)

	assert.Len(t, s.Lines(), 2)
	_, ok := s.Quantity(2)
	assert.False(t, ok)

	// mutations on a removed line are no-ops
	s.Increment(2)
	s.Decrement(2)
	_, ok = s.Quantity(2)
	assert.False(t, ok)
	assert.Equal(t, 6.75, s.CartTotal())
}

func TestCartTotalEqualsSumOfLineTotals(t *testing.T) {
	s := loadedStore(t)
	s.Increment(1)
	s.Increment(3)
	s.Increment(3)

	want := s.LineTotal(1) + s.LineTotal(2) + s.LineTotal(3)
	assert.InDelta(t, want, s.CartTotal(), 0.001)
}

func TestCartTotalEmptyCartIsZero(t *testing.T) {
	s := NewCartStore()
	assert.Equal(t, 0.0, s.CartTotal())
}

func TestBuildCheckoutPayload(t *testing.T) {
	s := loadedStore(t)
	s.Increment(1)

	payload := s.BuildCheckoutPayload()

	require.Len(t, payload, 3)
	assert.Equal(t, models.CheckoutLine{
		ID: 1, ProductID: 10, ProductName: "Latte", ProductPrice: 4.50, Quantity: 2,
	}, payload[0])
	assert.Equal(t, 1, payload[1].Quantity)

	// building the payload must not touch the store
	assert.Len(t, s.Lines(), 3)
	q, _ := s.Quantity(1)
	assert.Equal(t, 2, q)
}

func TestSubmitCheckoutSuccessClearsCartAndBlocksLoad(t *testing.T) {
	s := loadedStore(t)

	submitter := OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		assert.Len(t, payload, 3)
		return "Order placed successfully", nil
	})

	msg, err := s.SubmitCheckout(context.Background(), submitter)
	require.NoError(t, err)
	assert.Equal(t, "Order placed successfully", msg)

	assert.True(t, s.Empty())
	assert.True(t, s.HasCheckedOut())

	// a fetch response arriving after checkout must not repopulate
	loaded := s.Load(s.Generation(), testLines())
	assert.False(t, loaded)
	assert.True(t, s.Empty())
}

func TestSubmitCheckoutFailureLeavesStateUnchanged(t *testing.T) {
	s := loadedStore(t)
	s.Increment(1)

	submitter := OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		return "", errors.New("network down")
	})

	_, err := s.SubmitCheckout(context.Background(), submitter)
	require.Error(t, err)

	assert.False(t, s.HasCheckedOut())
	assert.Len(t, s.Lines(), 3)
	q, _ := s.Quantity(1)
	assert.Equal(t, 2, q)
}

func TestSubmitCheckoutEmptyCartIsValidationError(t *testing.T) {
	s := NewCartStore()

	called := false
	submitter := OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		called = true
		return "", nil
	})

	_, err := s.SubmitCheckout(context.Background(), submitter)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, called)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	s := NewCartStore()

	// fetch starts, captures the generation
	gen := s.Generation()

	// before the fetch resolves the user checks out another cart load
	require.True(t, s.Load(gen, testLines()))
	ok := OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		return "ok", nil
	})
	_, err := s.SubmitCheckout(context.Background(), ok)
	require.NoError(t, err)

	// the stale response lands now
	assert.False(t, s.Load(gen, testLines()))
	assert.True(t, s.Empty())
}

func TestResetAllowsLoadAgain(t *testing.T) {
	s := loadedStore(t)
	ok := OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		return "ok", nil
	})
	_, err := s.SubmitCheckout(context.Background(), ok)
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.HasCheckedOut())
	assert.True(t, s.Load(s.Generation(), testLines()))
	assert.Len(t, s.Lines(), 3)
}

func TestCartManagerReturnsSameStorePerUser(t *testing.T) {
	m := NewCartManager()

	a := m.Cart(7)
	b := m.Cart(7)
	c := m.Cart(8)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
