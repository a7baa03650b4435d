package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/diewo77/go-videoshop/internal/cart"
	"github.com/diewo77/go-videoshop/internal/services"
	"github.com/shopspring/decimal"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (e *env) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password, at least 8 characters")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil || *email == "" || *password == "" {
		return errUsage
	}
	u, err := e.api.Register(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "registered %s (id %d)\n", u.Email, u.ID)
	return nil
}

func (e *env) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil || *email == "" || *password == "" {
		return errUsage
	}
	res, err := e.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := e.writeToken(res.Token); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "logged in as %s until %s\n", res.User.Email, res.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (e *env) logout() error {
	e.api.Token = ""
	return e.clearToken()
}

func (e *env) list(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	var (
		out any
		err error
	)
	switch args[0] {
	case "clients":
		out, err = e.api.ListClients(ctx)
	case "produits":
		out, err = e.api.ListProducts(ctx)
	case "vendeurs":
		out, err = e.api.ListVendors(ctx)
	case "ventes":
		out, err = e.api.ListSales(ctx)
	case "achats":
		out, err = e.api.ListPurchases(ctx)
	default:
		return fmt.Errorf("unknown resource %q: %w", args[0], errUsage)
	}
	if err != nil {
		return err
	}
	return e.printJSON(out)
}

// history prints the purchases of one client.
func (e *env) history(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("client id: %w", err)
	}
	rows, err := e.api.ListClientPurchases(ctx, uint(id))
	if err != nil {
		return err
	}
	return e.printJSON(rows)
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	store, err := e.openCart()
	if err != nil {
		return err
	}
	switch args[0] {
	case "add":
		return e.cartAdd(ctx, store, args[1:])
	case "list":
		return e.cartList(store)
	case "qty":
		if len(args) != 3 {
			return errUsage
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		return store.UpdateQuantity(id, qty)
	case "rm":
		if len(args) != 2 {
			return errUsage
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		return store.Remove(id)
	case "clear":
		return store.Clear()
	default:
		return fmt.Errorf("unknown cart command %q: %w", args[0], errUsage)
	}
}

func (e *env) cartAdd(ctx context.Context, store *cart.Store, args []string) error {
	fs := newFlagSet("cart add")
	productID := fs.Uint("product", 0, "product id")
	clientID := fs.Uint("client", 0, "client id")
	vendorID := fs.Uint("vendor", 0, "vendor id")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *productID == 0 {
		return cart.ErrMissingProduct
	}
	if *clientID == 0 {
		return cart.ErrMissingClient
	}
	if *vendorID == 0 {
		return cart.ErrMissingVendor
	}

	product, err := e.api.GetProduct(ctx, *productID)
	if err != nil {
		return fmt.Errorf("product %d: %w", *productID, err)
	}
	client, err := e.api.GetClient(ctx, *clientID)
	if err != nil {
		return fmt.Errorf("client %d: %w", *clientID, err)
	}
	vendor, err := e.api.GetVendor(ctx, *vendorID)
	if err != nil {
		return fmt.Errorf("vendor %d: %w", *vendorID, err)
	}
	_, err = store.Add(product, client, vendor, *qty)
	return err
}

func (e *env) cartList(store *cart.Store) error {
	items := store.Items()
	if len(items) == 0 {
		fmt.Fprintln(e.stdout, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tFILM\tCLIENT\tVENDEUR\tQTE\tPRIX\tTOTAL")
	total := decimal.Zero
	for _, it := range items {
		purchase := cart.PurchaseFor(it)
		line := purchase.Total()
		total = total.Add(line)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Product.Titre, it.Client.FullName(), it.Vendor.FullName(),
			it.Quantite, services.FormatAmount(it.Product.Prix), services.FormatAmount(line))
	}
	fmt.Fprintf(tw, "\t\t\t\t\t\t%s\n", services.FormatAmount(total))
	return tw.Flush()
}

func (e *env) checkout(ctx context.Context, args []string) error {
	fs := newFlagSet("checkout")
	out := fs.String("out", ".", "directory the PDF invoices are written to")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	store, err := e.openCart()
	if err != nil {
		return err
	}

	writePDF := cart.InvoiceRendererFunc(func(_ context.Context, inv services.Invoice) error {
		b, err := services.RenderPDF(inv)
		if err != nil {
			return err
		}
		f, err := createUnique(*out, inv.FileName())
		if err != nil {
			return err
		}
		if _, err := f.Write(b); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})

	invoices, err := store.Checkout(ctx, e.api, writePDF)
	var stopped *cart.CheckoutError
	if errors.As(err, &stopped) {
		return fmt.Errorf("%w (the cart was kept; check the purchases list before retrying)", err)
	}
	for _, inv := range invoices {
		fmt.Fprintf(e.stdout, "%s  %s  %s\n", inv.Number, inv.Client.FullName(), services.FormatAmount(inv.Total))
	}
	return err
}

// createUnique creates dir/name, or dir/<base>-2<ext>, -3... when earlier
// invoices of the same client and day are already there.
func createUnique(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return f, err
	}
}

func (e *env) dashboard(ctx context.Context, args []string) error {
	fs := newFlagSet("dashboard")
	local := fs.Bool("local", false, "compute from the raw lists instead of asking the server")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if !*local {
		d, err := e.api.Dashboard(ctx)
		if err != nil {
			return err
		}
		return e.printJSON(d)
	}
	in, err := e.api.DashboardInput(ctx)
	if err != nil {
		return err
	}
	return e.printJSON(services.ComputeDashboard(in))
}
