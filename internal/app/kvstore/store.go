/*
Package kvstore provides the persistent key-value storage layer backing the
storefront state stores.

It mirrors the browser local-storage contract: synchronous Get/Set/Remove over
string keys holding serialized entities. Malformed or unreadable stored values
are reported as absent, never as errors, so store initialization can always
proceed. Three backends exist: an in-memory map, a JSON file, and Postgres.
*/
package kvstore

// Storage keys used by the state stores. Each shopping session sees these
// literal keys through a Namespaced wrapper.
const (
	KeyUser   = "session-user"
	KeyRegion = "session-region"
	KeyTheme  = "session-theme"
	KeyCart   = "session-cart"
)

// Store is the persistence contract consumed by the state stores.
type Store interface {
	// Get returns the value stored under key. The second return value is false
	// when the key is absent or the stored value is unreadable.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes the value stored under key. Removing a missing key is a no-op.
	Remove(key string) error
}

// Namespaced returns a view of s in which every key is prefixed with
// "<namespace>:". State stores keep using the literal session-* keys while
// each shopping session gets its own key space.
func Namespaced(s Store, namespace string) Store {
	return &namespacedStore{inner: s, prefix: namespace + ":"}
}

type namespacedStore struct {
	inner  Store
	prefix string
}

func (n *namespacedStore) Get(key string) ([]byte, bool) {
	return n.inner.Get(n.prefix + key)
}

func (n *namespacedStore) Set(key string, value []byte) error {
	return n.inner.Set(n.prefix+key, value)
}

func (n *namespacedStore) Remove(key string) error {
	return n.inner.Remove(n.prefix + key)
}
