package services

import (
	"context"
	"errors"
	"math"
	"sync"

	"wakeup-cafe/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// PendingOrderFetcher supplies the cart lines a user has waiting for
// checkout. Implemented by repositories.OrderRepository.
type PendingOrderFetcher interface {
	FetchPendingOrders(ctx context.Context, userID int) ([]models.CartLine, error)
}

// OrderSubmitter places the checkout payload as an order. It returns the
// confirmation message shown to the user.
type OrderSubmitter interface {
	SubmitCheckout(ctx context.Context, payload []models.CheckoutLine) (string, error)
}

// OrderSubmitterFunc adapts a function to the OrderSubmitter interface.
type OrderSubmitterFunc func(ctx context.Context, payload []models.CheckoutLine) (string, error)

func (f OrderSubmitterFunc) SubmitCheckout(ctx context.Context, payload []models.CheckoutLine) (string, error) {
	return f(ctx, payload)
}

// CartStore tracks pending order lines and their quantities. Lines and the
// quantity map are kept in lockstep: every line id has a quantity entry and
// removing a line deletes both together.
//
// After a successful checkout the store stays cleared until Reset is
// called; a Load that resolves late (stale fetch) is discarded through the
// generation counter rather than by cancelling the request.
type CartStore struct {
	mu         sync.Mutex
	lines      []models.CartLine
	quantities map[int]int
	checkedOut bool
	generation uint64
}

func NewCartStore() *CartStore {
	return &CartStore{quantities: map[int]int{}}
}

// Generation returns the token a caller must capture before starting a
// fetch and pass back to Load. Any state transition that invalidates
// in-flight fetches bumps it.
func (s *CartStore) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Load replaces the line set and initializes every quantity to 1. It is a
// no-op returning false when the user has already checked out, or when gen
// no longer matches the store's generation (the fetch raced a checkout or
// reset).
func (s *CartStore) Load(gen uint64, lines []models.CartLine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkedOut || gen != s.generation {
		return false
	}

	s.lines = make([]models.CartLine, len(lines))
	copy(s.lines, lines)
	s.quantities = make(map[int]int, len(lines))
	for _, line := range lines {
		s.quantities[line.ID] = 1
	}
	return true
}

// Increment adds one to the quantity of the given line. Unknown ids are
// ignored.
func (s *CartStore) Increment(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quantities[id]; ok {
		s.quantities[id]++
	}
}

// Decrement subtracts one from the quantity of the given line, never going
// below 1. Unknown ids are ignored.
func (s *CartStore) Decrement(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.quantities[id]; ok {
		if q > 1 {
			s.quantities[id] = q - 1
		}
	}
}

// Remove deletes the line and its quantity entry together.
func (s *CartStore) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	delete(s.quantities, id)
}

func (s *CartStore) Quantity(id int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quantities[id]
	return q, ok
}

func (s *CartStore) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *CartStore) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *CartStore) HasCheckedOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkedOut
}

// LineTotal returns price times quantity for one line, rounded to 2
// decimal places. Unknown ids yield 0.
func (s *CartStore) LineTotal(id int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return round2(s.lineTotalLocked(id))
}

func (s *CartStore) lineTotalLocked(id int) float64 {
	q, ok := s.quantities[id]
	if !ok {
		return 0
	}
	for _, line := range s.lines {
		if line.ID == id {
			return round2(line.ProductPrice * float64(q))
		}
	}
	return 0
}

// CartTotal sums the line totals of all current lines, rounded to 2
// decimal places. An empty cart totals 0.
func (s *CartStore) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, line := range s.lines {
		total += s.lineTotalLocked(line.ID)
	}
	return round2(total)
}

// BuildCheckoutPayload produces one checkout entry per current line.
// Missing quantity entries fall back to 1. The store is not modified.
func (s *CartStore) BuildCheckoutPayload() []models.CheckoutLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := make([]models.CheckoutLine, 0, len(s.lines))
	for _, line := range s.lines {
		q, ok := s.quantities[line.ID]
		if !ok {
			q = 1
		}
		entry, err := models.NewCheckoutLine(line, q)
		if err != nil {
			continue
		}
		payload = append(payload, entry)
	}
	return payload
}

// SubmitCheckout builds the payload and delegates to the submitter. An
// empty cart is rejected before any call is made. On success the cart is
// cleared, the checkout flag is set and the generation is bumped so a late
// Load cannot repopulate it; on failure the state is left untouched.
func (s *CartStore) SubmitCheckout(ctx context.Context, submitter OrderSubmitter) (string, error) {
	payload := s.BuildCheckoutPayload()
	if len(payload) == 0 {
		return "", ErrEmptyCart
	}

	message, err := submitter.SubmitCheckout(ctx, payload)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.lines = nil
	s.quantities = map[int]int{}
	s.checkedOut = true
	s.generation++
	s.mu.Unlock()

	return message, nil
}

// Reset clears the checkout flag so a fresh Load can repopulate the cart,
// as when the user navigates away from the order screen and back.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.quantities = map[int]int{}
	s.checkedOut = false
	s.generation++
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CartManager hands out one CartStore per user. The registry is the only
// shared structure; each store serializes its own mutations.
type CartManager struct {
	mu    sync.Mutex
	carts map[int]*CartStore
}

func NewCartManager() *CartManager {
	return &CartManager{carts: map[int]*CartStore{}}
}

func (m *CartManager) Cart(userID int) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.carts[userID]
	if !ok {
		store = NewCartStore()
		m.carts[userID] = store
	}
	return store
}
