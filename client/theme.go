package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

const themeKey = "theme"

// Storage is a persistent string key/value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FileStorage keeps keys in a single JSON object on disk.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStatePath is the state file under the user's config directory.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog-admin", "state.json"), nil
}

func (s *FileStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value

	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// load reads the state file. A missing file is an empty store.
func (s *FileStorage) load() (map[string]string, error) {
	values := map[string]string{}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	return values, nil
}

// ThemeStore holds the console's light/dark preference.
type ThemeStore struct {
	storage Storage
	theme   Theme
}

func NewThemeStore(storage Storage) *ThemeStore {
	return &ThemeStore{storage: storage, theme: Light}
}

// Init loads the saved preference. Anything other than "dark" is light.
func (t *ThemeStore) Init() (Theme, error) {
	v, _, err := t.storage.Get(themeKey)
	if err != nil {
		return t.theme, err
	}
	t.theme = Light
	if Theme(v) == Dark {
		t.theme = Dark
	}
	return t.theme, nil
}

// Toggle flips the preference and saves it.
func (t *ThemeStore) Toggle() (Theme, error) {
	next := Dark
	if t.theme == Dark {
		next = Light
	}
	if err := t.storage.Set(themeKey, string(next)); err != nil {
		return t.theme, err
	}
	t.theme = next
	return next, nil
}

func (t *ThemeStore) Theme() Theme {
	return t.theme
}

func (t *ThemeStore) IsDark() bool {
	return t.theme == Dark
}
