package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/diewo77/go-videoshop/internal/models"
)

const (
	clientsPath   = "/api/clients"
	productsPath  = "/api/produits"
	vendorsPath   = "/api/vendeurs"
	salesPath     = "/api/ventes"
	purchasesPath = "/api/achats"
)

func itemPath(base string, id uint) string { return fmt.Sprintf("%s/%d", base, id) }

// Clients

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := c.do(ctx, http.MethodGet, clientsPath, nil, &out)
	return out, err
}

func (c *Client) GetClient(ctx context.Context, id uint) (models.Client, error) {
	var out models.Client
	err := c.do(ctx, http.MethodGet, itemPath(clientsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateClient(ctx context.Context, in models.Client) (models.Client, error) {
	var out models.Client
	err := c.do(ctx, http.MethodPost, clientsPath, in, &out)
	return out, err
}

func (c *Client) UpdateClient(ctx context.Context, id uint, in models.Client) error {
	return c.do(ctx, http.MethodPut, itemPath(clientsPath, id), in, nil)
}

func (c *Client) DeleteClient(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(clientsPath, id), nil, nil)
}

// ListClientPurchases returns the purchase history of one client.
func (c *Client) ListClientPurchases(ctx context.Context, id uint) ([]models.PurchaseDetail, error) {
	var out []models.PurchaseDetail
	err := c.do(ctx, http.MethodGet, itemPath(clientsPath, id)+"/achats", nil, &out)
	return out, err
}

// Products

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, productsPath, nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodGet, itemPath(productsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in models.Product) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPost, productsPath, in, &out)
	return out, err
}

// UploadProduct creates a product from form fields and an image.
func (c *Client) UploadProduct(ctx context.Context, fields map[string]string, fileName string, image io.Reader) (models.Product, error) {
	var out models.Product
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return out, err
		}
	}
	if image != nil {
		fw, err := w.CreateFormFile("Photo", filepath.Base(fileName))
		if err != nil {
			return out, err
		}
		if _, err := io.Copy(fw, image); err != nil {
			return out, fmt.Errorf("read image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+productsPath, &buf)
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	err = c.send(req, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, in models.Product) error {
	return c.do(ctx, http.MethodPut, itemPath(productsPath, id), in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(productsPath, id), nil, nil)
}

// Vendors

func (c *Client) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	err := c.do(ctx, http.MethodGet, vendorsPath, nil, &out)
	return out, err
}

func (c *Client) GetVendor(ctx context.Context, id uint) (models.Vendor, error) {
	var out models.Vendor
	err := c.do(ctx, http.MethodGet, itemPath(vendorsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateVendor(ctx context.Context, in models.Vendor) (models.Vendor, error) {
	var out models.Vendor
	err := c.do(ctx, http.MethodPost, vendorsPath, in, &out)
	return out, err
}

func (c *Client) UpdateVendor(ctx context.Context, id uint, in models.Vendor) error {
	return c.do(ctx, http.MethodPut, itemPath(vendorsPath, id), in, nil)
}

func (c *Client) DeleteVendor(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(vendorsPath, id), nil, nil)
}

// Sales

func (c *Client) ListSales(ctx context.Context) ([]models.SaleDetail, error) {
	var out []models.SaleDetail
	err := c.do(ctx, http.MethodGet, salesPath, nil, &out)
	return out, err
}

func (c *Client) GetSale(ctx context.Context, id uint) (models.Sale, error) {
	var out models.Sale
	err := c.do(ctx, http.MethodGet, itemPath(salesPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateSale(ctx context.Context, in models.Sale) (models.Sale, error) {
	var out models.Sale
	err := c.do(ctx, http.MethodPost, salesPath, in, &out)
	return out, err
}

func (c *Client) UpdateSale(ctx context.Context, id uint, in models.Sale) error {
	return c.do(ctx, http.MethodPut, itemPath(salesPath, id), in, nil)
}

func (c *Client) DeleteSale(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(salesPath, id), nil, nil)
}

// Purchases

func (c *Client) ListPurchases(ctx context.Context) ([]models.PurchaseDetail, error) {
	var out []models.PurchaseDetail
	err := c.do(ctx, http.MethodGet, purchasesPath, nil, &out)
	return out, err
}

func (c *Client) GetPurchase(ctx context.Context, id uint) (models.Purchase, error) {
	var out models.Purchase
	err := c.do(ctx, http.MethodGet, itemPath(purchasesPath, id), nil, &out)
	return out, err
}

// CreatePurchase records one purchase. It satisfies cart.PurchaseCreator.
func (c *Client) CreatePurchase(ctx context.Context, in models.Purchase) (models.Purchase, error) {
	var out models.Purchase
	err := c.do(ctx, http.MethodPost, purchasesPath, in, &out)
	return out, err
}

func (c *Client) UpdatePurchase(ctx context.Context, id uint, in models.Purchase) error {
	return c.do(ctx, http.MethodPut, itemPath(purchasesPath, id), in, nil)
}

func (c *Client) DeletePurchase(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(purchasesPath, id), nil, nil)
}
