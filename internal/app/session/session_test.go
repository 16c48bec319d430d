package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/commerce"
	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/users"
)

type stubRegionLister struct {
	regions []commerce.Region
	err     error
}

func (s *stubRegionLister) ListRegions(ctx context.Context) ([]commerce.Region, error) {
	return s.regions, s.err
}

func newTestStore() (*Store, kvstore.Store) {
	storage := kvstore.NewMemoryStore()
	return NewStore(users.NewMemoryRepository(), storage, notify.Discard{}), storage
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials authenticate", func(t *testing.T) {
		s, storage := newTestStore()

		user, err := s.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "user_000000000001", user.ID)
		assert.Equal(t, "John", user.FirstName)

		snap := s.Snapshot()
		assert.True(t, snap.Authenticated)
		require.NotNil(t, snap.User)
		assert.Equal(t, "john@example.com", snap.User.Email)
		assert.False(t, snap.Loading)

		raw, ok := storage.Get(kvstore.KeyUser)
		require.True(t, ok, "authenticated user must be persisted")
		assert.NotContains(t, string(raw), "password", "credentials must never reach storage")
	})

	t.Run("wrong password leaves session anonymous", func(t *testing.T) {
		s, storage := newTestStore()

		_, err := s.Login(ctx, "john@example.com", "wrong")
		assert.ErrorIs(t, err, users.ErrInvalidCredentials)

		snap := s.Snapshot()
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.User)
		assert.False(t, snap.Loading)

		_, ok := storage.Get(kvstore.KeyUser)
		assert.False(t, ok)
	})

	t.Run("blank fields fail without touching the repository", func(t *testing.T) {
		s, _ := newTestStore()

		_, err := s.Login(ctx, "   ", "password123")
		assert.ErrorIs(t, err, users.ErrInvalidCredentials)

		_, err = s.Login(ctx, "john@example.com", "")
		assert.ErrorIs(t, err, users.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new account is created and signed in", func(t *testing.T) {
		s, _ := newTestStore()

		user, err := s.Register(ctx, users.NewUserInput{
			Email:     "new@example.com",
			Password:  "secret99",
			FirstName: "New",
			LastName:  "Shopper",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, users.DefaultPreferences(), user.Preferences)

		snap := s.Snapshot()
		assert.True(t, snap.Authenticated)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		s, _ := newTestStore()

		_, err := s.Register(ctx, users.NewUserInput{
			Email:    "john@example.com",
			Password: "secret99",
		})
		assert.ErrorIs(t, err, users.ErrEmailTaken)

		snap := s.Snapshot()
		assert.False(t, snap.Authenticated)
	})

	t.Run("input validation", func(t *testing.T) {
		s, _ := newTestStore()

		_, err := s.Register(ctx, users.NewUserInput{Email: "not-an-email", Password: "secret99"})
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = s.Register(ctx, users.NewUserInput{Email: "a@b.com", Password: "short"})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s, storage := newTestStore()

	_, err := s.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	s.SetRegion(Region{Code: "JP", Name: "Japan", Currency: "JPY"})
	s.Logout()

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.User)

	_, ok := storage.Get(kvstore.KeyUser)
	assert.False(t, ok, "logout must remove the persisted user")

	require.NotNil(t, snap.Region, "region selection survives logout")
	assert.Equal(t, "JP", snap.Region.Code)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an active user", func(t *testing.T) {
		s, _ := newTestStore()

		first := "Ghost"
		_, err := s.UpdateProfile(ctx, users.Patch{FirstName: &first})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("merges the patch and persists", func(t *testing.T) {
		s, storage := newTestStore()

		_, err := s.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)

		first := "Johnny"
		updated, err := s.UpdateProfile(ctx, users.Patch{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Johnny", updated.FirstName)
		assert.Equal(t, "Doe", updated.LastName)

		raw, ok := storage.Get(kvstore.KeyUser)
		require.True(t, ok)

		var saved users.User
		require.NoError(t, json.Unmarshal(raw, &saved))
		assert.Equal(t, "Johnny", saved.FirstName)
	})
}

func TestRestoreFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemoryStore()
	repo := users.NewMemoryRepository()

	first := NewStore(repo, storage, notify.Discard{})
	_, err := first.Login(ctx, "jane@example.com", "password456")
	require.NoError(t, err)
	first.SetRegion(Region{Code: "CA", Name: "Canada", Currency: "CAD"})

	second := NewStore(repo, storage, notify.Discard{})
	snap := second.Snapshot()

	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "jane@example.com", snap.User.Email)
	require.NotNil(t, snap.Region)
	assert.Equal(t, "CA", snap.Region.Code)
}

func TestRestoreIgnoresMalformedValues(t *testing.T) {
	storage := kvstore.NewMemoryStore()
	require.NoError(t, storage.Set(kvstore.KeyUser, []byte(`{broken`)))
	require.NoError(t, storage.Set(kvstore.KeyRegion, []byte(`[42`)))

	s := NewStore(users.NewMemoryRepository(), storage, notify.Discard{})
	snap := s.Snapshot()

	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Region)
}

func TestLoadRegions(t *testing.T) {
	ctx := context.Background()

	t.Run("API failure substitutes the fallback list", func(t *testing.T) {
		s, _ := newTestStore()

		s.LoadRegions(ctx, &stubRegionLister{err: errors.New("connection refused")})

		snap := s.Snapshot()
		require.Len(t, snap.Regions, 6)
		assert.Equal(t, "US", snap.Regions[0].Code)
		assert.Equal(t, "JP", snap.Regions[5].Code)
	})

	t.Run("empty API result substitutes the fallback list", func(t *testing.T) {
		s, _ := newTestStore()

		s.LoadRegions(ctx, &stubRegionLister{})

		assert.Len(t, s.Snapshot().Regions, 6)
	})

	t.Run("API regions are flattened per country", func(t *testing.T) {
		s, _ := newTestStore()

		s.LoadRegions(ctx, &stubRegionLister{regions: []commerce.Region{
			{
				ID:           "reg_eu",
				Name:         "Europe",
				CurrencyCode: "eur",
				Countries: []commerce.Country{
					{ISO2: "de", DisplayName: "Germany"},
					{ISO2: "fr", DisplayName: "France"},
				},
			},
		}})

		snap := s.Snapshot()
		require.Len(t, snap.Regions, 3)
		assert.Equal(t, Region{Code: "reg_eu", Name: "Germany", Currency: "EUR", Flag: "DE"}, snap.Regions[0])
		assert.Equal(t, "Other (Europe)", snap.Regions[2].Name)
	})
}

func TestToggleDarkMode(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous toggle persists the theme key only", func(t *testing.T) {
		s, storage := newTestStore()

		assert.True(t, s.ToggleDarkMode(ctx))
		assert.False(t, s.ToggleDarkMode(ctx))
		assert.True(t, s.ToggleDarkMode(ctx))

		raw, ok := storage.Get(kvstore.KeyTheme)
		require.True(t, ok)
		assert.Equal(t, "true", string(raw))

		_, ok = storage.Get(kvstore.KeyUser)
		assert.False(t, ok)
	})

	t.Run("authenticated toggle merges into account preferences", func(t *testing.T) {
		storage := kvstore.NewMemoryStore()
		repo := users.NewMemoryRepository()
		s := NewStore(repo, storage, notify.Discard{})

		_, err := s.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)

		assert.True(t, s.ToggleDarkMode(ctx))

		snap := s.Snapshot()
		require.NotNil(t, snap.User)
		assert.True(t, snap.User.Preferences.DarkMode)

		stored, err := repo.FindByID(ctx, snap.User.ID)
		require.NoError(t, err)
		assert.True(t, stored.Preferences.DarkMode)
	})

	t.Run("stored theme restores on construction", func(t *testing.T) {
		storage := kvstore.NewMemoryStore()
		require.NoError(t, storage.Set(kvstore.KeyTheme, []byte("true")))

		s := NewStore(users.NewMemoryRepository(), storage, notify.Discard{})
		assert.True(t, s.Snapshot().DarkMode)
	})
}
