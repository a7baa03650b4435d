package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diewo77/go-videoshop/internal/cart"
)

const (
	tokenFile = "token"
	cartFile  = "cart.json"
)

func (e *env) readToken() (string, error) {
	b, err := os.ReadFile(filepath.Join(e.home, tokenFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (e *env) writeToken(token string) error {
	if err := os.WriteFile(filepath.Join(e.home, tokenFile), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (e *env) clearToken() error {
	err := os.Remove(filepath.Join(e.home, tokenFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// openCart loads the persisted cart and logs every change made to it.
func (e *env) openCart() (*cart.Store, error) {
	store, err := cart.New(cart.NewFileStorage(filepath.Join(e.home, cartFile)))
	if err != nil {
		return nil, fmt.Errorf("open cart: %w", err)
	}
	store.Subscribe(func(ev cart.Event) {
		fmt.Fprintf(e.stdout, "cart %s: %d item(s)\n", ev.Kind, len(ev.Items))
	})
	return store, nil
}
