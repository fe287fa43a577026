package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadToken returns the stored API token. The TOGGL_API_TOKEN environment
// variable takes precedence over the token file.
func ReadToken(dir string) (string, bool) {
	if value := strings.TrimSpace(os.Getenv("TOGGL_API_TOKEN")); value != "" {
		return value, true
	}
	raw, err := os.ReadFile(filepath.Join(dir, tokenFileName))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	return token, token != ""
}

// WriteToken stores the API token with owner-only permissions.
func WriteToken(dir, token string) error {
	path := filepath.Join(dir, tokenFileName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// ClearToken removes the stored token, if any.
func ClearToken(dir string) {
	os.Remove(filepath.Join(dir, tokenFileName))
}

// HashToken returns the hex SHA-256 of the token. The cache file records this
// hash, never the raw token, to tie cached data to the credential that
// fetched it.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
