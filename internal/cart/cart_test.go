package cart

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/services"
	"github.com/shopspring/decimal"
)

var (
	heat   = models.Product{ID: 7, Titre: "Heat", Prix: decimal.NewFromInt(500)}
	ran    = models.Product{ID: 8, Titre: "Ran", Prix: decimal.RequireFromString("120.50")}
	sara   = models.Client{ID: 1, Nom: "Alaoui", Prenom: "Sara"}
	omar   = models.Client{ID: 2, Nom: "Tazi", Prenom: "Omar"}
	seller = models.Vendor{ID: 3, Nom: "Bennani", Prenom: "Youssef"}
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(&MemoryStorage{})
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	s.setClock(func() time.Time { return fixed })
	return s
}

func (s *Store) setClock(now func() time.Time) { s.now = now }

type fakeCreator struct {
	mu      sync.Mutex
	got     []models.Purchase
	failAt  int // 1-based call that fails, 0 never
	failErr error
}

func (f *fakeCreator) CreatePurchase(_ context.Context, p models.Purchase) (models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAt == len(f.got)+1 {
		return models.Purchase{}, f.failErr
	}
	p.ID = uint(len(f.got) + 1)
	f.got = append(f.got, p)
	return p, nil
}

func TestStore_AddValidates(t *testing.T) {
	s := newStore(t)
	tests := []struct {
		name string
		p    models.Product
		c    models.Client
		v    models.Vendor
		qty  int
		want error
	}{
		{"zero qty", heat, sara, seller, 0, ErrInvalidQuantity},
		{"no client", heat, models.Client{}, seller, 1, ErrMissingClient},
		{"no vendor", heat, sara, models.Vendor{}, 1, ErrMissingVendor},
		{"no product", models.Product{}, sara, seller, 1, ErrMissingProduct},
	}
	for _, tt := range tests {
		if _, err := s.Add(tt.p, tt.c, tt.v, tt.qty); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v want %v", tt.name, err, tt.want)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("rejected adds must not change the cart")
	}
}

func TestStore_IDsStrictlyIncrease(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add(heat, sara, seller, 1)
	b, _ := s.Add(ran, sara, seller, 1)
	if a.ID != time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC).UnixMilli() {
		t.Errorf("first id should be the timestamp, got %d", a.ID)
	}
	if b.ID <= a.ID {
		t.Fatalf("ids not increasing: %d then %d", a.ID, b.ID)
	}
}

func TestStore_UpdateRemoveAndEvents(t *testing.T) {
	s := newStore(t)
	var kinds []EventKind
	var lastLen int
	cancel := s.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		lastLen = len(ev.Items)
	})

	it, err := s.Add(heat, sara, seller, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateQuantity(it.ID, 4); err != nil {
		t.Fatal(err)
	}
	if s.Items()[0].Quantite != 4 {
		t.Fatalf("quantity not updated: %+v", s.Items())
	}
	if err := s.UpdateQuantity(it.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := s.UpdateQuantity(999, 2); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := s.Remove(it.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(it.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("second remove: %v", err)
	}

	want := []EventKind{EventAdded, EventUpdated, EventRemoved}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %s want %s", i, kinds[i], want[i])
		}
	}
	if lastLen != 0 {
		t.Errorf("last event should carry an empty cart, got %d items", lastLen)
	}

	cancel()
	s.Add(heat, sara, seller, 1)
	if len(kinds) != 3 {
		t.Fatalf("cancelled subscriber still notified: %v", kinds)
	}
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := newStore(t)
	s.Add(heat, sara, seller, 1)
	items := s.Items()
	items[0].Quantite = 99
	if s.Items()[0].Quantite != 1 {
		t.Fatal("Items must not expose internal state")
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	s, err := New(NewFileStorage(path))
	if err != nil {
		t.Fatal(err)
	}
	first, _ := s.Add(heat, sara, seller, 2)

	reloaded, err := New(NewFileStorage(path))
	if err != nil {
		t.Fatal(err)
	}
	items := reloaded.Items()
	if len(items) != 1 || items[0].ID != first.ID || !items[0].Product.Prix.Equal(heat.Prix) {
		t.Fatalf("unexpected reloaded cart %+v", items)
	}
	second, _ := reloaded.Add(ran, sara, seller, 1)
	if second.ID <= first.ID {
		t.Fatalf("ids must keep increasing across reloads: %d then %d", first.ID, second.ID)
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatal(err)
	}
	again, _ := New(NewFileStorage(path))
	if again.Len() != 0 {
		t.Fatalf("cart not cleared on disk")
	}
}

func TestCheckout_SingleItem(t *testing.T) {
	s := newStore(t)
	s.Add(heat, sara, seller, 2)

	pc := &fakeCreator{}
	var rendered []services.Invoice
	var checkedOut bool
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventCheckedOut {
			checkedOut = len(ev.Items) == 0
		}
	})
	invoices, err := s.Checkout(context.Background(), pc, InvoiceRendererFunc(func(_ context.Context, inv services.Invoice) error {
		rendered = append(rendered, inv)
		return nil
	}))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if len(pc.got) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(pc.got))
	}
	p := pc.got[0]
	if p.ClientID != 1 || p.ProductID != 7 || p.VendorID == nil || *p.VendorID != 3 || p.Quantite != 2 {
		t.Fatalf("unexpected purchase payload %+v", p)
	}
	if !p.PrixUnitaire.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unit price should be the product price, got %s", p.PrixUnitaire)
	}
	if len(invoices) != 1 || len(rendered) != 1 || !invoices[0].Total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected invoices %+v", invoices)
	}
	if invoices[0].Number != "FAC-20240305-1" {
		t.Errorf("invoice number = %s", invoices[0].Number)
	}
	if s.Len() != 0 || !checkedOut {
		t.Fatal("cart should be cleared and the checkout event published")
	}
}

func TestCheckout_TwoClientsTwoInvoices(t *testing.T) {
	s := newStore(t)
	s.Add(heat, omar, seller, 1)
	s.Add(ran, sara, seller, 2)
	s.Add(ran, omar, seller, 1)

	pc := &fakeCreator{}
	invoices, err := s.Checkout(context.Background(), pc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pc.got) != 3 {
		t.Fatalf("expected 3 purchases got %d", len(pc.got))
	}
	if pc.got[0].ProductID != heat.ID || pc.got[1].ClientID != sara.ID || pc.got[2].ClientID != omar.ID {
		t.Fatalf("purchases out of cart order: %+v", pc.got)
	}
	if len(invoices) != 2 || invoices[0].Client.ID != omar.ID || invoices[1].Client.ID != sara.ID {
		t.Fatalf("expected one invoice per client in first-seen order, got %+v", invoices)
	}
	if !invoices[0].Total.Equal(decimal.RequireFromString("620.50")) {
		t.Errorf("omar total = %s", invoices[0].Total)
	}
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	s := newStore(t)
	s.Add(heat, sara, seller, 1)
	s.Add(ran, sara, seller, 1)
	s.Add(heat, omar, seller, 1)

	boom := errors.New("validation_failed")
	pc := &fakeCreator{failAt: 2, failErr: boom}
	renderCalls := 0
	_, err := s.Checkout(context.Background(), pc, InvoiceRendererFunc(func(context.Context, services.Invoice) error {
		renderCalls++
		return nil
	}))

	var ce *CheckoutError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CheckoutError, got %v", err)
	}
	if ce.Created != 1 || ce.Item.Product.ID != ran.ID || !errors.Is(err, boom) {
		t.Fatalf("unexpected checkout error %+v", ce)
	}
	if len(pc.got) != 1 {
		t.Fatalf("no purchase should be attempted after the failure, got %d", len(pc.got))
	}
	if s.Len() != 3 || renderCalls != 0 {
		t.Fatalf("cart must stay intact and no invoice rendered (len=%d renders=%d)", s.Len(), renderCalls)
	}
}

func TestCheckout_RenderErrorStillClears(t *testing.T) {
	s := newStore(t)
	s.Add(heat, sara, seller, 1)
	_, err := s.Checkout(context.Background(), &fakeCreator{}, InvoiceRendererFunc(func(context.Context, services.Invoice) error {
		return errors.New("disk full")
	}))
	if err == nil {
		t.Fatal("expected the render error")
	}
	if s.Len() != 0 {
		t.Fatal("purchases were recorded, the cart must be cleared")
	}
}

func TestCheckout_Empty(t *testing.T) {
	s := newStore(t)
	if _, err := s.Checkout(context.Background(), &fakeCreator{}, nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}
