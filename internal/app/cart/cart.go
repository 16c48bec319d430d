/*
Package cart implements the cart state store.

The store holds an ordered list of line items, persists to the key-value
storage layer after every mutation, and invokes its subscriber list after each
state change. All mutations are synchronous in effect; the loading flag only
models the busy window of a future remote call.
*/
package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/randx"
)

// Validation errors returned before any state mutation.
var (
	ErrInvalidItem = errors.New("cart item is invalid")
)

// LineItem is one cart entry: a variant reference plus a quantity.
// UnitPrice is in minor currency units.
type LineItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Cart is the persisted cart entity.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Snapshot is a point-in-time copy of the store state.
type Snapshot struct {
	Cart    Cart `json:"cart"`
	Loading bool `json:"loading"`
}

// Store is the cart state container.
// Invariant: no two items share a variant ID; Add merges quantities instead.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	loading  bool
	storage  kvstore.Store
	notifier notify.Notifier
	subs     []func(Snapshot)
}

// NewStore constructs a cart store initialized from persisted storage.
// A missing or malformed stored cart yields an empty cart.
func NewStore(storage kvstore.Store, notifier notify.Notifier) *Store {
	s := &Store{
		storage:  storage,
		notifier: notifier,
	}

	if raw, ok := storage.Get(kvstore.KeyCart); ok {
		var saved Cart
		if err := json.Unmarshal(raw, &saved); err != nil {
			logx.Warn("Stored cart is malformed, starting empty", "error", err)
		} else {
			s.items = saved.Items
		}
	}

	return s
}

// Subscribe registers fn to be invoked after every state change.
// Callbacks run synchronously on the mutating call.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Cart:    Cart{Items: items},
		Loading: s.loading,
	}
}

// Add appends the item to the cart, merging quantities when an item with the
// same variant ID already exists. The incoming item must carry a variant ID
// and a positive quantity; validation failures leave state untouched.
func (s *Store) Add(item LineItem) (Snapshot, error) {
	if item.VariantID == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
		s.notifier.Error("Failed to add to cart")
		return s.Snapshot(), ErrInvalidItem
	}

	s.mu.Lock()
	s.loading = true

	merged := false
	for i := range s.items {
		if s.items[i].VariantID == item.VariantID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}

	if !merged {
		if item.ID == "" {
			item.ID = randx.LineItemID()
		}
		s.items = append(s.items, item)
	}

	s.persistLocked()
	s.loading = false
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Added to cart")
	notifyAll(subs, snap)
	return snap, nil
}

// UpdateQuantity sets the quantity of the identified item exactly.
// A quantity of zero or less delegates to Remove. Updating a missing item is
// a no-op, matching the forgiving semantics of the UI store.
func (s *Store) UpdateQuantity(itemID string, quantity int) Snapshot {
	if quantity <= 0 {
		return s.Remove(itemID)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			break
		}
	}

	s.persistLocked()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Cart updated")
	notifyAll(subs, snap)
	return snap
}

// Remove deletes the identified item from the cart; missing items are a no-op.
func (s *Store) Remove(itemID string) Snapshot {
	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered

	s.persistLocked()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Removed from cart")
	notifyAll(subs, snap)
	return snap
}

// Clear empties the cart and removes the persisted record entirely.
// Removing the key is deliberate: a cleared cart must not survive as an empty
// stored document.
func (s *Store) Clear() Snapshot {
	s.mu.Lock()
	s.items = nil

	if err := s.storage.Remove(kvstore.KeyCart); err != nil {
		logx.Error(err, "Failed to remove persisted cart")
	}

	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Cart cleared")
	notifyAll(subs, snap)
	return snap
}

// Total returns the cart total in minor currency units: Σ unit price × quantity.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities across all line items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persistLocked writes the current cart to storage. Callers must hold s.mu.
// Persistence failures are logged, never propagated: in-memory state is the
// source of truth for the running session.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(Cart{Items: s.items})
	if err != nil {
		logx.Error(err, "Failed to encode cart for persistence")
		return
	}

	if err := s.storage.Set(kvstore.KeyCart, raw); err != nil {
		logx.Error(err, "Failed to persist cart")
	}
}

func notifyAll(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
