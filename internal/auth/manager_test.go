package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	internalhttp "github.com/energiapro-io/energiapro-client/internal/http"
	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// authServer is a fake authentication endpoint counting its calls.
type authServer struct {
	*httptest.Server

	calls   atomic.Int64
	handler func(w http.ResponseWriter, r *http.Request)
}

func newAuthServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *authServer {
	t.Helper()

	server := &authServer{handler: handler}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authenticate.php" {
			http.NotFound(w, r)

			return
		}

		server.calls.Add(1)
		server.handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server
}

func tokenResponse(token string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errorCode":"0","token":"` + token + `"}`))
	}
}

func newTestManager(server *authServer, username, secretKey string) *Manager {
	return NewManager(internalhttp.NewClient(server.URL), username, secretKey)
}

func TestManager_Obtain(t *testing.T) {
	t.Parallel()

	t.Run("authenticates on first call", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-1"))
		manager := newTestManager(server, "user", "secret")

		token, err := manager.Obtain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, int64(1), server.calls.Load())
	})

	t.Run("reuses the cached token", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-1"))
		manager := newTestManager(server, "user", "secret")

		for i := 0; i < 3; i++ {
			token, err := manager.Obtain(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "token-1", token)
		}

		assert.Equal(t, int64(1), server.calls.Load())
	})

	t.Run("refreshes an expired token", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-2"))
		manager := newTestManager(server, "user", "secret")
		manager.store.Set(&Token{Value: "token-1", ExpiresAt: time.Now().Add(-time.Minute)})

		token, err := manager.Obtain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "token-2", token)
		assert.Equal(t, int64(1), server.calls.Load())
	})

	t.Run("clear forces re-authentication", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-1"))
		manager := newTestManager(server, "user", "secret")

		_, err := manager.Obtain(context.Background())
		require.NoError(t, err)

		manager.Clear()

		_, err = manager.Obtain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), server.calls.Load())
	})

	t.Run("concurrent misses collapse into one call", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-1"))
		manager := newTestManager(server, "user", "secret")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				token, err := manager.Obtain(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, "token-1", token)
			}()
		}

		wg.Wait()
		assert.Equal(t, int64(1), server.calls.Load())
	})
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("sends a one-time hash instead of the secret", func(t *testing.T) {
		t.Parallel()

		const secretKey = "super-secret"

		var (
			gotUsername string
			gotSecret   string
			gotAuth     string
		)

		server := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotUsername = r.PostFormValue("username")
			gotSecret = r.PostFormValue("secret_key")
			gotAuth = r.Header.Get("Authorization")
			tokenResponse("token-1")(w, r)
		})
		manager := newTestManager(server, "user", secretKey)

		_, err := manager.Obtain(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "user", gotUsername)
		assert.Empty(t, gotAuth)
		require.NotEmpty(t, gotSecret)
		assert.NotEqual(t, secretKey, gotSecret)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(gotSecret), []byte(secretKey)))
	})

	t.Run("fresh hash on every attempt", func(t *testing.T) {
		t.Parallel()

		var (
			mu      sync.Mutex
			secrets []string
		)

		server := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			mu.Lock()
			secrets = append(secrets, r.PostFormValue("secret_key"))
			mu.Unlock()
			tokenResponse("token-1")(w, r)
		})
		manager := newTestManager(server, "user", "secret")

		_, err := manager.Obtain(context.Background())
		require.NoError(t, err)

		manager.Clear()

		_, err = manager.Obtain(context.Background())
		require.NoError(t, err)

		require.Len(t, secrets, 2)
		assert.NotEqual(t, secrets[0], secrets[1])
	})

	t.Run("error payload becomes an api error", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errorCode":"10","error":"Not allowed."}`))
		})
		manager := newTestManager(server, "bad-user", "secret")

		_, err := manager.Obtain(context.Background())
		require.Error(t, err)

		apiErr, ok := energiapro.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, energiapro.ErrorCodeInvalidUsername, apiErr.Code)

		// A failed refresh leaves nothing cached.
		_, ok = manager.store.Get()
		assert.False(t, ok)
	})

	t.Run("success payload without a token", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errorCode":"0"}`))
		})
		manager := newTestManager(server, "user", "secret")

		_, err := manager.Obtain(context.Background())
		assert.ErrorIs(t, err, energiapro.ErrMissingToken)
	})

	t.Run("non string token field", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errorCode":"0","token":12345}`))
		})
		manager := newTestManager(server, "user", "secret")

		_, err := manager.Obtain(context.Background())
		assert.ErrorIs(t, err, energiapro.ErrMissingToken)
	})

	t.Run("cancelled context aborts hashing", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t, tokenResponse("token-1"))
		manager := newTestManager(server, "user", "secret")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := manager.Obtain(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
