// Package auth manages EnergiaPro API tokens: it exchanges credentials for
// a bearer token, caches it for its useful lifetime, and collapses
// concurrent refreshes into a single authentication call.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"

	internalhttp "github.com/energiapro-io/energiapro-client/internal/http"
	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

const (
	// authEndpoint is the credential exchange endpoint, called without a
	// bearer header.
	authEndpoint = "authenticate.php"

	// bcryptCost is the cost factor for the one-time secret key hash.
	bcryptCost = 11
)

// Manager obtains, caches, and refreshes API tokens.
//
// Besides the store's value lock it holds a refresh lock that serializes the
// act of refreshing: at most one authentication call is in flight at any
// time, concurrent cache misses wait for it and then re-check the cache
// instead of authenticating again.
type Manager struct {
	transport *internalhttp.Client
	username  string
	secretKey string
	store     *TokenStore
	refreshMu sync.Mutex
}

// NewManager creates a token manager exchanging the given credentials
// through the given transport.
func NewManager(transport *internalhttp.Client, username, secretKey string) *Manager {
	return &Manager{
		transport: transport,
		username:  username,
		secretKey: secretKey,
		store:     NewTokenStore(),
	}
}

// Obtain returns a valid token, from the cache when possible and by
// authenticating with the API otherwise.
func (m *Manager) Obtain(ctx context.Context) (string, error) {
	if token, ok := m.store.Get(); ok {
		return token, nil
	}

	return m.refresh(ctx)
}

// Clear discards the cached token, forcing the next Obtain to
// re-authenticate.
func (m *Manager) Clear() {
	m.store.Clear()
}

// refresh authenticates and stores the fresh token. The refresh lock is held
// across the double-check and the authentication call so concurrent misses
// collapse into one request.
func (m *Manager) refresh(ctx context.Context) (string, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if token, ok := m.store.Get(); ok {
		return token, nil
	}

	token, err := m.authenticate(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(NewToken(token))

	return token, nil
}

// authenticate exchanges the credentials for a new token.
func (m *Manager) authenticate(ctx context.Context) (string, error) {
	oneTimeSecret, err := m.hashSecretKey(ctx)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("username", m.username)
	form.Set("secret_key", oneTimeSecret)

	resp, err := m.transport.PostForm(ctx, authEndpoint, form, "")
	if err != nil {
		return "", err
	}

	if apiErr := energiapro.ParseAPIError(resp.Body); apiErr != nil {
		return "", apiErr
	}

	token := gjson.GetBytes(resp.Body, "token")
	if token.Type != gjson.String || token.Str == "" {
		return "", energiapro.ErrMissingToken
	}

	return token.Str, nil
}

// hashSecretKey computes the one-time secret key: a fresh salted bcrypt hash
// of the long-lived secret, never reused across authentication attempts.
// Hashing is CPU-bound, so it runs on its own goroutine and the caller waits
// on it without holding up context cancellation.
func (m *Manager) hashSecretKey(ctx context.Context) (string, error) {
	type hashResult struct {
		hash []byte
		err  error
	}

	results := make(chan hashResult, 1)

	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(m.secretKey), bcryptCost)
		results <- hashResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("hashing secret key: %w", ctx.Err())
	case result := <-results:
		if result.err != nil {
			return "", fmt.Errorf("generating one-time secret key: %w", result.err)
		}

		return string(result.hash), nil
	}
}
