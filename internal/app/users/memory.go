package users

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/randx"
)

// record is the internal backing row: the public User plus the credential hash.
type record struct {
	user         User
	passwordHash []byte
}

// MemoryRepository is a concurrency-safe in-memory Repository seeded with the
// demo accounts. It stands in for the commerce platform's customer API.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*record
	byEmail map[string]*record
}

// seedAccount describes one demo account hashed into the repository at startup.
type seedAccount struct {
	user     User
	password string
}

func demoSeed() []seedAccount {
	return []seedAccount{
		{
			password: "password123",
			user: User{
				ID:        "user_000000000001",
				Email:     "john@example.com",
				FirstName: "John",
				LastName:  "Doe",
				Phone:     "+1 (555) 123-4567",
				Avatar:    "avatars/john.jpg",
				Address: Address{
					Street:  "123 Main St",
					City:    "New York",
					State:   "NY",
					ZipCode: "10001",
					Country: "United States",
				},
				Preferences: Preferences{
					Newsletter:   true,
					Marketing:    false,
					OrderUpdates: true,
					Promotions:   false,
					DarkMode:     false,
				},
			},
		},
		{
			password: "password456",
			user: User{
				ID:        "user_000000000002",
				Email:     "jane@example.com",
				FirstName: "Jane",
				LastName:  "Smith",
				Phone:     "+1 (555) 987-6543",
				Avatar:    "avatars/jane.jpg",
				Address: Address{
					Street:  "456 Oak Ave",
					City:    "Los Angeles",
					State:   "CA",
					ZipCode: "90210",
					Country: "United States",
				},
				Preferences: Preferences{
					Newsletter:   true,
					Marketing:    true,
					OrderUpdates: true,
					Promotions:   false,
					DarkMode:     false,
				},
			},
		},
	}
}

// NewMemoryRepository returns a repository seeded with the demo accounts.
// Demo passwords are bcrypt-hashed at seed time; plaintext never persists.
func NewMemoryRepository() *MemoryRepository {
	repo := &MemoryRepository{
		byID:    make(map[string]*record),
		byEmail: make(map[string]*record),
	}

	for _, seed := range demoSeed() {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			logx.Error(err, "failed to hash seed account password", "email", seed.user.Email)
			continue
		}

		rec := &record{user: seed.user, passwordHash: hash}
		repo.byID[seed.user.ID] = rec
		repo.byEmail[normalizeEmail(seed.user.Email)] = rec
	}

	return repo
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate verifies the email/password pair against the stored hash.
func (m *MemoryRepository) Authenticate(ctx context.Context, email, password string) (*User, error) {
	m.mu.RLock()
	rec, ok := m.byEmail[normalizeEmail(email)]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := rec.user
	return &user, nil
}

// FindByID returns the user with the given ID.
func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	user := rec.user
	return &user, nil
}

// Create registers a new account. The email must not be on record.
func (m *MemoryRepository) Create(ctx context.Context, input NewUserInput) (*User, error) {
	email := normalizeEmail(input.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := randx.UserID()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	rec := &record{
		user: User{
			ID:          id,
			Email:       input.Email,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Phone:       input.Phone,
			Address:     Address{},
			Preferences: DefaultPreferences(),
		},
		passwordHash: hash,
	}

	m.byID[id] = rec
	m.byEmail[email] = rec

	user := rec.user
	return &user, nil
}

// Update merges the patch into the stored profile of the given user.
func (m *MemoryRepository) Update(ctx context.Context, id string, patch Patch) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(&rec.user)

	user := rec.user
	return &user, nil
}
