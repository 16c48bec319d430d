/*
Package shop coordinates the live shopper sessions of the storefront.

Each shopping session owns one session/profile store and one cart store,
persisted under a session-scoped key namespace. The Manager creates sessions
on first touch, restores their state from storage, evicts idle sessions (their
persisted state survives eviction), and bridges store subscriptions onto a
per-session event fan-out consumed by the WebSocket handler.
*/
package shop

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/app/cart"
	"storefront/internal/app/commerce"
	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/session"
	"storefront/internal/app/users"
	"storefront/internal/pkg/logx"
)

const (
	// sessionIdleTTL is how long a session may sit untouched before eviction.
	sessionIdleTTL = 30 * time.Minute

	// reapInterval is how often the reaper scans for idle sessions.
	reapInterval = 5 * time.Minute

	// eventBuffer is the per-subscriber event channel capacity. Slow consumers
	// drop events rather than block mutations.
	eventBuffer = 16
)

// Session bundles the two state stores of one shopper plus the event fan-out.
type Session struct {
	// ID is the shopping session identifier carried in the client token.
	ID string

	// State is the session/profile store.
	State *session.Store

	// Cart is the cart store.
	Cart *cart.Store

	mu       sync.Mutex
	lastSeen time.Time
	subs     map[chan Event]struct{}
}

// SubscribeEvents registers an event channel receiving this session's
// store-change events. The returned cancel function must be called when the
// consumer goes away.
func (s *Session) SubscribeEvents() (<-chan Event, func()) {
	ch := make(chan Event, eventBuffer)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}

	return ch, cancel
}

// broadcast fans the event out to all subscribers without blocking.
func (s *Session) broadcast(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; the next event carries a full
			// snapshot anyway.
		}
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager creates, tracks, and reaps shopper sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	repo     users.Repository
	storage  kvstore.Store
	commerce commerce.Client
	notifier notify.Notifier

	stop chan struct{}
	wg   sync.WaitGroup

	logger zerolog.Logger
}

// NewManager constructs a Manager and starts the idle-session reaper.
func NewManager(repo users.Repository, storage kvstore.Store, client commerce.Client, notifier notify.Notifier) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		repo:     repo,
		storage:  storage,
		commerce: client,
		notifier: notifier,
		stop:     make(chan struct{}),
		logger:   logx.Logger().With().Str("component", "ShopManager").Logger(),
	}

	m.wg.Add(1)
	go m.runReaper()

	return m
}

// GetOrCreate returns the session with the given ID, creating it and
// restoring its stores from namespaced storage on first touch. The region
// list is loaded (or falls back) during creation so the session is never
// handed out without region options.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) *Session {
	m.mu.RLock()
	existing, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if ok {
		existing.touch()
		return existing
	}

	m.mu.Lock()
	// Re-check: another request may have created the session meanwhile.
	if existing, ok := m.sessions[sessionID]; ok {
		m.mu.Unlock()
		existing.touch()
		return existing
	}

	scoped := kvstore.Namespaced(m.storage, sessionID)

	s := &Session{
		ID:       sessionID,
		State:    session.NewStore(m.repo, scoped, m.notifier),
		Cart:     cart.NewStore(scoped, m.notifier),
		lastSeen: time.Now(),
		subs:     make(map[chan Event]struct{}),
	}

	s.State.Subscribe(func(snap session.Snapshot) {
		s.broadcast(Event{Store: EventStoreSession, State: snap})
	})
	s.Cart.Subscribe(func(snap cart.Snapshot) {
		s.broadcast(Event{Store: EventStoreCart, State: snap})
	})

	m.sessions[sessionID] = s
	m.mu.Unlock()

	s.State.LoadRegions(ctx, m.commerce)

	m.logger.Info().Str("session_id", sessionID).Msg("Shopping session created")
	return s
}

// runReaper periodically evicts sessions idle past the TTL.
// Evicted sessions keep their persisted state and are rebuilt on next touch.
func (m *Manager) runReaper() {
	defer m.wg.Done()

	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-sessionIdleTTL)

			m.mu.Lock()
			evicted := 0
			for id, s := range m.sessions {
				if s.idleSince().Before(cutoff) {
					delete(m.sessions, id)
					evicted++
				}
			}
			remaining := len(m.sessions)
			m.mu.Unlock()

			if evicted > 0 {
				m.logger.Info().Int("evicted", evicted).Int("active", remaining).Msg("Idle sessions reaped")
			}
		}
	}
}

// Shutdown stops the reaper and waits for it to exit.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down shop manager...")
	close(m.stop)
	m.wg.Wait()
}
