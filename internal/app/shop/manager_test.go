package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/cart"
	"storefront/internal/app/catalog"
	"storefront/internal/app/commerce"
	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/users"
)

// stubCommerce fails every call so sessions fall back to the fixed region list.
type stubCommerce struct{}

func (stubCommerce) ListRegions(ctx context.Context) ([]commerce.Region, error) {
	return nil, errors.New("commerce unavailable")
}

func (stubCommerce) GetRegion(ctx context.Context, id string) (*commerce.Region, error) {
	return nil, errors.New("commerce unavailable")
}

func (stubCommerce) ListProducts(ctx context.Context, query commerce.ProductQuery) ([]catalog.Product, error) {
	return nil, errors.New("commerce unavailable")
}

func (stubCommerce) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return nil, errors.New("commerce unavailable")
}

func (stubCommerce) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return nil, errors.New("commerce unavailable")
}

func (stubCommerce) CreateCart(ctx context.Context, params commerce.CreateCartParams) (*commerce.RemoteCart, error) {
	return nil, errors.New("commerce unavailable")
}

func newTestManager(storage kvstore.Store) *Manager {
	return NewManager(users.NewMemoryRepository(), storage, stubCommerce{}, notify.Discard{})
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kvstore.NewMemoryStore())
	defer m.Shutdown()

	first := m.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")
	second := m.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")
	assert.Same(t, first, second, "repeat touches must return the same session")

	other := m.GetOrCreate(ctx, "sess_bbbbbbbbbbbb")
	assert.NotSame(t, first, other)

	assert.NotEmpty(t, first.State.Snapshot().Regions, "a new session must carry region options")
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kvstore.NewMemoryStore())
	defer m.Shutdown()

	a := m.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")
	b := m.GetOrCreate(ctx, "sess_bbbbbbbbbbbb")

	_, err := a.Cart.Add(cart.LineItem{VariantID: "variant_1", Title: "Hoodie", UnitPrice: 500, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, a.Cart.ItemCount())
	assert.Equal(t, 0, b.Cart.ItemCount(), "carts must not leak across sessions")
}

func TestStateSurvivesEviction(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemoryStore()

	m := newTestManager(storage)
	sess := m.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")
	_, err := sess.Cart.Add(cart.LineItem{VariantID: "variant_1", Title: "Hoodie", UnitPrice: 500, Quantity: 2})
	require.NoError(t, err)
	m.Shutdown()

	// A fresh manager over the same storage rebuilds the session's state.
	m2 := newTestManager(storage)
	defer m2.Shutdown()

	rebuilt := m2.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")
	assert.Equal(t, 2, rebuilt.Cart.ItemCount())
	assert.Equal(t, int64(1000), rebuilt.Cart.Total())
}

func TestSubscribeEvents(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kvstore.NewMemoryStore())
	defer m.Shutdown()

	sess := m.GetOrCreate(ctx, "sess_aaaaaaaaaaaa")

	events, cancel := sess.SubscribeEvents()
	defer cancel()

	_, err := sess.Cart.Add(cart.LineItem{VariantID: "variant_1", Title: "Hoodie", UnitPrice: 500, Quantity: 1})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, EventStoreCart, event.Store)
		snap, ok := event.State.(cart.Snapshot)
		require.True(t, ok)
		assert.Len(t, snap.Cart.Items, 1)
	case <-time.After(time.Second):
		t.Fatal("expected a cart event")
	}

	cancel()
	_, err = sess.Cart.Add(cart.LineItem{VariantID: "variant_2", Title: "Cup", UnitPrice: 300, Quantity: 1})
	require.NoError(t, err)
	// No assertion needed; the mutation must simply not block or panic after cancel.
}
