// Package authkey resolves the DeepL auth key stored under the user's XDG
// config directory:
//
//	$XDG_CONFIG_HOME/denops_translate/deepl_authkey  (default: ~/.config/...)
//
// The file holds the bare key; surrounding whitespace is ignored.
package authkey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	dirName  = "denops_translate"
	fileName = "deepl_authkey"
)

// ConfigDir returns $XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// DefaultPath returns the location of the auth key file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Resolver reads the auth key once and keeps it for the life of the process.
// A failed read is not remembered.
type Resolver struct {
	path     string
	readFile func(name string) ([]byte, error)

	mu  sync.Mutex
	key string
	ok  bool
}

// NewResolver returns a Resolver for path.
func NewResolver(path string) *Resolver {
	return &Resolver{path: path, readFile: os.ReadFile}
}

// Path returns the file the key is read from.
func (r *Resolver) Path() string {
	return r.path
}

// Get returns the cached key, reading the file on first use.
func (r *Resolver) Get() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ok {
		return r.key, nil
	}

	data, err := r.readFile(r.path)
	if err != nil {
		return "", fmt.Errorf("cannot read DeepL's authkey from %s: %w", r.path, err)
	}

	r.key = strings.TrimSpace(string(data))
	r.ok = true
	return r.key, nil
}

// Save writes key to path with 0600 permissions, creating the directory.
func Save(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("auth key is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("writing auth key file: %w", err)
	}
	return nil
}
