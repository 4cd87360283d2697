package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
	"github.com/energiapro-io/energiapro-client/pkg/eproclient"
)

// Common static errors used throughout the commands package.
var (
	ErrUsernameRequired  = errors.New("missing username: pass --username or set ENERGIAPRO_USERNAME")
	ErrSecretKeyRequired = errors.New("missing secret key: pass --secret-key or set ENERGIAPRO_SECRET_KEY")
)

// createClient builds an API client from flags, environment, and config
// file, prompting for the secret key when it is missing and stdin is a
// terminal.
func createClient() (energiapro.Client, error) {
	username := viper.GetString("username")
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}

	secretKey := viper.GetString("secret_key")
	if strings.TrimSpace(secretKey) == "" {
		prompted, err := promptSecretKey()
		if err != nil {
			return nil, err
		}

		secretKey = prompted
	}

	config := &energiapro.Config{
		Username:  username,
		SecretKey: secretKey,
		BaseURL:   viper.GetString("base_url"),
		Timeout:   viper.GetDuration("timeout"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = &stderrLogger{}
	}

	client, err := eproclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// promptSecretKey reads the secret key from the terminal without echo.
func promptSecretKey() (string, error) {
	stdin := int(os.Stdin.Fd())
	if !term.IsTerminal(stdin) {
		return "", ErrSecretKeyRequired
	}

	fmt.Fprint(os.Stderr, "Secret key: ")

	secret, err := term.ReadPassword(stdin)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading secret key: %w", err)
	}

	if strings.TrimSpace(string(secret)) == "" {
		return "", ErrSecretKeyRequired
	}

	return string(secret), nil
}

// stderrLogger writes transport debug logging to stderr for --verbose runs.
type stderrLogger struct{}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s %v\n", level, msg, fields)
}
