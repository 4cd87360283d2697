package auth

import (
	"sync"
	"time"
)

// TokenTTL is how long an obtained token is kept. The API issues tokens
// valid for 60 minutes; caching them for 55 leaves a margin against clock
// drift and tokens expiring while a request is in flight.
const TokenTTL = 55 * time.Minute

// Token is an EnergiaPro API bearer token together with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// NewToken creates a token expiring TokenTTL from now.
func NewToken(value string) *Token {
	return &Token{
		Value:     value,
		ExpiresAt: time.Now().Add(TokenTTL),
	}
}

// Valid reports whether the token can still be used.
func (t *Token) Valid() bool {
	return t != nil && t.Value != "" && time.Now().Before(t.ExpiresAt)
}

// TokenStore holds at most one cached token behind a read/write lock, so
// readers of a valid token never wait on a refresh in progress.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the cached token value if it is still valid.
func (s *TokenStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.token.Valid() {
		return "", false
	}

	return s.token.Value, true
}

// Set replaces the cached token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear discards the cached token. Idempotent; callers already holding a
// token value keep using it for their in-flight requests.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
