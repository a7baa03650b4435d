package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists the cart between runs.
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
	Clear() error
}

// FileStorage keeps the cart as a JSON array in a single file.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) *FileStorage { return &FileStorage{Path: path} }

// Load returns an empty cart when the file does not exist yet.
func (s *FileStorage) Load() ([]Item, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", s.Path, err)
	}
	return items, nil
}

// Save replaces the file atomically.
func (s *FileStorage) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".cart-*.json")
	if err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write cart: %w", err)
	}
	return os.Rename(tmp.Name(), s.Path)
}

func (s *FileStorage) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// MemoryStorage keeps a serialized copy in memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (s *MemoryStorage) Load() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(s.data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MemoryStorage) Save(items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
