// Package accountstore holds the workbench's demo accounts in memory.
//
// Accounts exist so the login and registration flows have something real
// to check against; they are seeded at startup and lost on shutdown.
package accountstore

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("an account with that email already exists")

	// ErrBadCredentials covers both unknown email and wrong password so
	// the login form cannot be used to probe which emails exist.
	ErrBadCredentials = errors.New("email or password is incorrect")
)

// Store is the in-memory account collection, keyed by lowercase email.
type Store struct {
	mu       sync.RWMutex
	byEmail  map[string]models.Account
	accounts map[string]models.Account // by id
}

// New creates an empty account store.
func New() *Store {
	return &Store{
		byEmail:  make(map[string]models.Account),
		accounts: make(map[string]models.Account),
	}
}

// Create registers a new account, hashing the password with bcrypt.
func (s *Store) Create(email, fullName, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return models.Account{}, ErrEmailTaken
	}

	acct := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[email] = acct
	s.accounts[acct.ID] = acct
	return acct, nil
}

// Authenticate checks email and password against the store.
func (s *Store) Authenticate(email, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	acct, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		// Burn a comparison anyway so timing does not reveal whether
		// the email exists.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.Account{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return models.Account{}, ErrBadCredentials
	}
	return acct, nil
}

// GetByEmail looks up an account by email.
func (s *Store) GetByEmail(email string) (models.Account, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byEmail[email]
	return acct, ok
}

// Get looks up an account by id.
func (s *Store) Get(id string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	return acct, ok
}

// Count returns the number of accounts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, used to
// equalize Authenticate timing for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
