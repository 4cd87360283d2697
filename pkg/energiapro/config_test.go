package energiapro_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("minimal config is valid", func(t *testing.T) {
		t.Parallel()

		config := &energiapro.Config{Username: "user", SecretKey: "secret"}
		assert.NoError(t, config.Validate())
	})

	tests := []struct {
		name       string
		config     *energiapro.Config
		wantReason string
	}{
		{
			name:       "blank username",
			config:     &energiapro.Config{Username: "  ", SecretKey: "secret"},
			wantReason: "username cannot be empty",
		},
		{
			name:       "blank secret key",
			config:     &energiapro.Config{Username: "user", SecretKey: ""},
			wantReason: "secret_key cannot be empty",
		},
		{
			name:       "http base url",
			config:     &energiapro.Config{Username: "user", SecretKey: "secret", BaseURL: "http://example.com/api"},
			wantReason: "must use the https scheme",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.config.Validate()
			require.Error(t, err)
			assert.True(t, energiapro.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), testCase.wantReason)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	config := &energiapro.Config{}
	assert.Equal(t, energiapro.DefaultBaseURL, config.BaseURLOrDefault())
	assert.Equal(t, energiapro.DefaultTimeout, config.TimeoutOrDefault())

	config.BaseURL = "https://example.com/api"
	config.Timeout = 5 * time.Second
	assert.Equal(t, "https://example.com/api", config.BaseURLOrDefault())
	assert.Equal(t, 5*time.Second, config.TimeoutOrDefault())
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "already normalized",
			raw:  "https://example.com/api",
			want: "https://example.com/api",
		},
		{
			name: "trailing slash is trimmed",
			raw:  "https://example.com/api/",
			want: "https://example.com/api",
		},
		{
			name: "repeated trailing slashes are trimmed",
			raw:  "https://example.com/api///",
			want: "https://example.com/api",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "blank",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "http scheme",
			raw:     "http://example.com/api",
			wantErr: true,
		},
		{
			name:    "relative url",
			raw:     "example.com/api",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			raw:     "https://",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := energiapro.NormalizeBaseURL(testCase.raw)
			if testCase.wantErr {
				require.Error(t, err)
				assert.True(t, energiapro.IsInvalidArgument(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
