// Package cart is the shopping cart of the point of sale: lines waiting to be
// turned into purchases and invoices.
package cart

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/diewo77/go-videoshop/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrMissingClient   = errors.New("a client is required")
	ErrMissingVendor   = errors.New("a vendor is required")
	ErrMissingProduct  = errors.New("a product is required")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Item is a product snapshot taken when it was added, with the client it is
// sold to and the vendor selling it.
type Item struct {
	ID       int64          `json:"id"`
	Product  models.Product `json:"product"`
	Client   models.Client  `json:"client"`
	Vendor   models.Vendor  `json:"vendor"`
	Quantite int            `json:"Quantite"`
}

type EventKind string

const (
	EventAdded      EventKind = "added"
	EventUpdated    EventKind = "updated"
	EventRemoved    EventKind = "removed"
	EventCleared    EventKind = "cleared"
	EventCheckedOut EventKind = "checked_out"
)

// Event is delivered to subscribers after every change, with the items as
// they are after it.
type Event struct {
	Kind  EventKind
	Items []Item
}

// Store is safe for concurrent use. Subscribers run synchronously, after the
// store lock is released.
type Store struct {
	mu      sync.Mutex
	items   []Item
	lastID  int64
	storage Storage
	subs    map[int]func(Event)
	nextSub int
	now     func() time.Time
}

// New loads the persisted cart from storage.
func New(storage Storage) (*Store, error) {
	if storage == nil {
		storage = &MemoryStorage{}
	}
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}
	s := &Store{items: items, storage: storage, subs: map[int]func(Event){}, now: time.Now}
	for _, it := range items {
		s.lastID = max(s.lastID, it.ID)
	}
	return s, nil
}

// Add appends a line and returns it with its new id.
func (s *Store) Add(product models.Product, client models.Client, vendor models.Vendor, qty int) (Item, error) {
	switch {
	case qty < 1:
		return Item{}, ErrInvalidQuantity
	case product.ID == 0:
		return Item{}, ErrMissingProduct
	case client.ID == 0:
		return Item{}, ErrMissingClient
	case vendor.ID == 0:
		return Item{}, ErrMissingVendor
	}
	s.mu.Lock()
	item := Item{ID: s.nextID(), Product: product, Client: client, Vendor: vendor, Quantite: qty}
	next := append(slices.Clone(s.items), item)
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return Item{}, err
	}
	s.publish(EventAdded)
	return item, nil
}

// UpdateQuantity sets the quantity of one line.
func (s *Store) UpdateQuantity(id int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}
	next := slices.Clone(s.items)
	next[i].Quantite = qty
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(EventUpdated)
	return nil
}

func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}
	next := slices.Delete(slices.Clone(s.items), i, i+1)
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(EventRemoved)
	return nil
}

// Clear empties the cart and its storage.
func (s *Store) Clear() error {
	if err := s.clear(); err != nil {
		return err
	}
	s.publish(EventCleared)
	return nil
}

func (s *Store) clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Clear(); err != nil {
		return err
	}
	s.items = nil
	return nil
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn for every future change. Call cancel to stop.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(kind EventKind) {
	s.mu.Lock()
	ev := Event{Kind: kind, Items: slices.Clone(s.items)}
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// commitLocked persists next and only then makes it current.
func (s *Store) commitLocked(next []Item) error {
	if err := s.storage.Save(next); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.items = next
	return nil
}

// nextID is the current time in milliseconds, bumped when needed so ids
// stay strictly increasing.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}
