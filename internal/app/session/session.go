/*
Package session implements the session/profile state store.

The store tracks the signed-in shopper, the selected region, and the theme
preference; it persists each to the key-value storage layer and invokes its
subscriber list after every mutation. Two top-level states exist, anonymous
and authenticated; login and register transition forward, logout transitions
back. The loading flag is an orthogonal busy indicator around each operation
and is cleared on every exit path.
*/
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/users"
	"storefront/internal/pkg/logx"
)

// Validation errors detected before any state mutation.
var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotAuthenticated = errors.New("no active user")
)

// Snapshot is a point-in-time copy of the store state.
type Snapshot struct {
	User          *users.User `json:"user"`
	Authenticated bool        `json:"isAuthenticated"`
	Loading       bool        `json:"loading"`
	Region        *Region     `json:"region"`
	Regions       []Region    `json:"regions"`
	DarkMode      bool        `json:"darkMode"`
}

// Store is the session/profile state container.
type Store struct {
	mu            sync.Mutex
	user          *users.User
	authenticated bool
	loading       bool
	region        *Region
	regions       []Region
	darkMode      bool

	repo     users.Repository
	storage  kvstore.Store
	notifier notify.Notifier
	subs     []func(Snapshot)
}

// NewStore constructs a session store initialized from persisted storage.
// A stored user restores the authenticated state and the user's theme
// preference; malformed stored values are treated as absent.
func NewStore(repo users.Repository, storage kvstore.Store, notifier notify.Notifier) *Store {
	s := &Store{
		repo:     repo,
		storage:  storage,
		notifier: notifier,
	}

	if raw, ok := storage.Get(kvstore.KeyUser); ok {
		var saved users.User
		if err := json.Unmarshal(raw, &saved); err != nil {
			logx.Warn("Stored user is malformed, starting anonymous", "error", err)
		} else {
			s.user = &saved
			s.authenticated = true
			s.darkMode = saved.Preferences.DarkMode
		}
	}

	if raw, ok := storage.Get(kvstore.KeyRegion); ok {
		var saved Region
		if err := json.Unmarshal(raw, &saved); err != nil {
			logx.Warn("Stored region is malformed, ignoring", "error", err)
		} else {
			s.region = &saved
		}
	}

	if raw, ok := storage.Get(kvstore.KeyTheme); ok {
		var saved bool
		if err := json.Unmarshal(raw, &saved); err == nil {
			s.darkMode = saved
		}
	}

	return s
}

// Subscribe registers fn to be invoked after every state change.
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
	snap := Snapshot{
		Authenticated: s.authenticated,
		Loading:       s.loading,
		DarkMode:      s.darkMode,
	}

	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	if s.region != nil {
		region := *s.region
		snap.Region = &region
	}
	if len(s.regions) > 0 {
		snap.Regions = make([]Region, len(s.regions))
		copy(snap.Regions, s.regions)
	}

	return snap
}

// LoadRegions populates the region list from the commerce API.
// On failure the fixed fallback list is substituted; the list is never left empty.
func (s *Store) LoadRegions(ctx context.Context, client regionLister) {
	regions := fallbackRegions()

	apiRegions, err := client.ListRegions(ctx)
	if err != nil {
		logx.Warn("Failed to load regions from commerce API, using fallback list", "error", err)
	} else if flattened := flattenRegions(apiRegions); len(flattened) > 0 {
		regions = flattened
	}

	s.mu.Lock()
	s.regions = regions
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	notifyAll(subs, snap)
}

// beginOperation raises the loading flag and returns the reset function.
// The reset runs on every exit path regardless of outcome.
func (s *Store) beginOperation() func() {
	s.mu.Lock()
	s.loading = true
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()
	notifyAll(subs, snap)

	return func() {
		s.mu.Lock()
		s.loading = false
		snap := s.snapshotLocked()
		subs := s.subs
		s.mu.Unlock()
		notifyAll(subs, snap)
	}
}

// Login authenticates the email/password pair against the user repository.
// On success the sanitized user becomes the active session and the user's
// stored theme preference is applied; on failure state is left unchanged and
// users.ErrInvalidCredentials is returned.
func (s *Store) Login(ctx context.Context, email, password string) (*users.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		s.notifier.Error("Invalid email or password")
		return nil, users.ErrInvalidCredentials
	}

	done := s.beginOperation()
	defer done()

	user, err := s.repo.Authenticate(ctx, email, password)
	if err != nil {
		s.notifier.Error("Invalid email or password")
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.darkMode = user.Preferences.DarkMode
	s.persistUserLocked()
	s.persistThemeLocked()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Successfully logged in!")
	notifyAll(subs, snap)

	out := *user
	return &out, nil
}

// Register creates a new account and logs it in.
// A duplicate email fails with users.ErrEmailTaken and alters nothing.
func (s *Store) Register(ctx context.Context, input users.NewUserInput) (*users.User, error) {
	if !strings.Contains(input.Email, "@") || strings.TrimSpace(input.Email) == "" {
		s.notifier.Error("Invalid email address")
		return nil, ErrInvalidEmail
	}

	passwordLen := utf8.RuneCountInString(input.Password)
	if passwordLen < 6 || passwordLen > 50 {
		s.notifier.Error("Invalid password")
		return nil, ErrInvalidPassword
	}

	done := s.beginOperation()
	defer done()

	user, err := s.repo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			s.notifier.Error("An account with this email already exists")
		} else {
			s.notifier.Error("Failed to create account")
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.darkMode = user.Preferences.DarkMode
	s.persistUserLocked()
	s.persistThemeLocked()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Account created successfully!")
	notifyAll(subs, snap)

	out := *user
	return &out, nil
}

// Logout clears the active user and removes the persisted session record.
// Region and theme selections survive a logout.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false

	if err := s.storage.Remove(kvstore.KeyUser); err != nil {
		logx.Error(err, "Failed to remove persisted user")
	}

	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Successfully logged out!")
	notifyAll(subs, snap)
}

// UpdateProfile shallow-merges the patch into the active user, updates the
// backing record, and persists the result. With no active user it fails with
// ErrNotAuthenticated and changes nothing.
func (s *Store) UpdateProfile(ctx context.Context, patch users.Patch) (*users.User, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.notifier.Error("Please sign in to continue")
		return nil, ErrNotAuthenticated
	}
	userID := s.user.ID
	s.mu.Unlock()

	done := s.beginOperation()
	defer done()

	updated, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		s.notifier.Error("Failed to update profile")
		return nil, err
	}

	s.mu.Lock()
	s.user = updated
	s.darkMode = updated.Preferences.DarkMode
	s.persistUserLocked()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	s.notifier.Success("Profile updated successfully!")
	notifyAll(subs, snap)

	out := *updated
	return &out, nil
}

// SetRegion replaces the active region and persists the selection.
func (s *Store) SetRegion(region Region) {
	s.mu.Lock()
	s.region = &region

	raw, err := json.Marshal(region)
	if err == nil {
		if err := s.storage.Set(kvstore.KeyRegion, raw); err != nil {
			logx.Error(err, "Failed to persist region selection")
		}
	}

	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	notifyAll(subs, snap)
}

// ToggleDarkMode flips the theme flag and persists it. When a user is active
// the flag is also merged into the user's preferences and both the theme key
// and the user record are persisted.
func (s *Store) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	newMode := s.darkMode
	s.persistThemeLocked()

	var userID string
	if s.user != nil {
		userID = s.user.ID
	}
	s.mu.Unlock()

	if userID != "" {
		snap := s.Snapshot()
		prefs := users.DefaultPreferences()
		if snap.User != nil {
			prefs = snap.User.Preferences
		}
		prefs.DarkMode = newMode

		updated, err := s.repo.Update(ctx, userID, users.Patch{Preferences: &prefs})
		if err != nil {
			logx.Error(err, "Failed to update theme preference on user record", "user_id", userID)
		} else {
			s.mu.Lock()
			s.user = updated
			s.persistUserLocked()
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	notifyAll(subs, snap)
	return newMode
}

// persistUserLocked writes the active user to storage. Callers must hold s.mu.
func (s *Store) persistUserLocked() {
	if s.user == nil {
		return
	}

	raw, err := json.Marshal(s.user)
	if err != nil {
		logx.Error(err, "Failed to encode user for persistence")
		return
	}

	if err := s.storage.Set(kvstore.KeyUser, raw); err != nil {
		logx.Error(err, "Failed to persist user")
	}
}

// persistThemeLocked writes the theme flag to storage. Callers must hold s.mu.
func (s *Store) persistThemeLocked() {
	raw, err := json.Marshal(s.darkMode)
	if err != nil {
		return
	}

	if err := s.storage.Set(kvstore.KeyTheme, raw); err != nil {
		logx.Error(err, "Failed to persist theme preference")
	}
}

func notifyAll(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
