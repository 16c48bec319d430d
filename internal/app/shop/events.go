package shop

// Event is one store-change notification fanned out to session subscribers.
// It is the server-side analog of the UI's reactive re-render: every mutation
// of a session's stores produces one event carrying the fresh snapshot.
type Event struct {
	// Store names the originating store: "session" or "cart".
	Store string `json:"store"`

	// State is the snapshot of the originating store after the mutation.
	State any `json:"state"`
}

const (
	// EventStoreSession marks events originating from the session/profile store.
	EventStoreSession = "session"

	// EventStoreCart marks events originating from the cart store.
	EventStoreCart = "cart"
)
