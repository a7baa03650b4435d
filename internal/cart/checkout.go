package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/services"
)

// PurchaseCreator records one purchase, typically through the API.
type PurchaseCreator interface {
	CreatePurchase(ctx context.Context, p models.Purchase) (models.Purchase, error)
}

// InvoiceRenderer delivers an invoice, e.g. writes its PDF to disk.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, inv services.Invoice) error
}

// InvoiceRendererFunc adapts a function to InvoiceRenderer.
type InvoiceRendererFunc func(ctx context.Context, inv services.Invoice) error

func (f InvoiceRendererFunc) RenderInvoice(ctx context.Context, inv services.Invoice) error {
	return f(ctx, inv)
}

// CheckoutError reports a purchase that could not be recorded. Purchases
// created before it are not rolled back and the cart is left as it was.
type CheckoutError struct {
	Created int
	Item    Item
	Err     error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout stopped at item %d after %d purchase(s): %v", e.Item.ID, e.Created, e.Err)
}

func (e *CheckoutError) Unwrap() error { return e.Err }

// PurchaseFor is the purchase recorded for a cart line, priced at the product
// snapshot.
func PurchaseFor(it Item) models.Purchase {
	vendorID := it.Vendor.ID
	return models.Purchase{
		ClientID:     it.Client.ID,
		ProductID:    it.Product.ID,
		VendorID:     &vendorID,
		Quantite:     it.Quantite,
		PrixUnitaire: it.Product.Prix,
	}
}

// Checkout records one purchase per line, in cart order, then renders one
// invoice per client and empties the cart. The invoices are returned even
// when rendering one of them fails, since the purchases are already stored.
func (s *Store) Checkout(ctx context.Context, pc PurchaseCreator, r InvoiceRenderer) ([]services.Invoice, error) {
	items := s.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, &CheckoutError{Created: i, Item: it, Err: err}
		}
		if _, err := pc.CreatePurchase(ctx, PurchaseFor(it)); err != nil {
			return nil, &CheckoutError{Created: i, Item: it, Err: err}
		}
	}

	invoices := services.InvoicesFromItems(invoiceItems(items), s.now())
	var renderErr error
	if r != nil {
		for _, inv := range invoices {
			if err := r.RenderInvoice(ctx, inv); err != nil {
				renderErr = errors.Join(renderErr, fmt.Errorf("invoice %s: %w", inv.Number, err))
			}
		}
	}
	if err := s.clear(); err != nil {
		return invoices, errors.Join(renderErr, err)
	}
	s.publish(EventCheckedOut)
	return invoices, renderErr
}

func invoiceItems(items []Item) []services.InvoiceItem {
	out := make([]services.InvoiceItem, len(items))
	for i, it := range items {
		out[i] = services.InvoiceItem{Client: it.Client, Vendor: it.Vendor, Product: it.Product, Quantite: it.Quantite}
	}
	return out
}
