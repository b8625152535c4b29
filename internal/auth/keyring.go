package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/vibeos/vibeos/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are stored in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// SaveCredentials stores the session credentials in the OS keyring.
func SaveCredentials(creds Credentials) error {
	if creds.AccessToken == "" {
		return errors.New("access token cannot be empty")
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, string(data)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// LoadCredentials retrieves the stored session credentials. Returns
// ErrNotFound if none are stored.
func LoadCredentials() (Credentials, error) {
	raw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse stored credentials: %w", err)
	}
	return creds, nil
}

// DeleteCredentials removes the stored session credentials.
func DeleteCredentials() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Token is a remote.TokenSource over the keyring: it returns the stored
// bearer token, or an empty token when signed out.
func Token() (string, error) {
	creds, err := LoadCredentials()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return creds.AccessToken, nil
}

// IsAvailable checks if the OS keyring is usable on the current system.
// Best effort: a read that fails with anything other than "not found"
// means the keyring is unavailable.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
