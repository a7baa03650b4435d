package handlers

import (
	"net/http"
	"testing"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/services"
	"github.com/shopspring/decimal"
)

func TestDashboardHandler_Show(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(t, db)
	c, p, v := seedRefs(t, db)
	db.Create(&models.Product{Titre: "Sans genre"})
	d1, _ := models.ParseDate("2024-01-10")
	d2, _ := models.ParseDate("2024-02-10")
	db.Create(&models.Sale{ProductID: p.ID, VendorID: v.ID, DateVente: d1})
	db.Create(&models.Sale{ProductID: p.ID, VendorID: v.ID, DateVente: d2})
	db.Create(&models.Purchase{ClientID: c.ID, ProductID: p.ID, PrixUnitaire: decimal.NewFromInt(3), Quantite: 4})

	rr := doJSON(t, r, http.MethodGet, "/api/dashboard", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	d := decode[services.Dashboard](t, rr)
	if d.Products != 2 || d.Sales != 2 || d.UnitsSold != 4 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if len(d.SalesByMonth) != 2 || d.SalesByMonth[0].Month != "2024-01" {
		t.Fatalf("unexpected months %+v", d.SalesByMonth)
	}
	if len(d.TopVendors) != 1 || d.TopVendors[0].Name != "Youssef Bennani" {
		t.Fatalf("unexpected top vendors %+v", d.TopVendors)
	}
}
