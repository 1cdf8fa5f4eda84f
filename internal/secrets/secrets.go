// Package secrets looks up credentials from the environment first and the
// OS keychain second, so cron runs work from .env and interactive machines
// can keep keys out of files.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "fundscout"

// Well-known secret names; also the env var names.
const (
	GeminiAPIKey  = "GEMINI_API_KEY"
	TelegramToken = "TELEGRAM_BOT_TOKEN"
)

// Lookup returns the secret by name, or "" when it is set nowhere.
func Lookup(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v, err := keyring.Get(KeyringService, name); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

func Set(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func Delete(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	return keyring.Delete(KeyringService, name)
}
