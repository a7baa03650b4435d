package queries

import (
	"context"
	"testing"

	"github.com/diewo77/go-videoshop/internal/db"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), db.GormConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		t.Fatal(err)
	}
	xdb, err := FromGorm(gdb)
	if err != nil {
		t.Fatal(err)
	}
	return gdb, xdb
}

func TestPurchaseQueryRepository_List(t *testing.T) {
	gdb, xdb := setup(t)
	ctx := context.Background()
	repo := NewPurchaseQueryRepository(xdb)

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	c := models.Client{Nom: "Alaoui", Prenom: "Sara", Email: "sara@example.com"}
	p := models.Product{Titre: "Heat", Prix: decimal.NewFromInt(500)}
	gdb.Create(&c)
	gdb.Create(&p)
	date, _ := models.ParseDate("2024-03-05")
	gdb.Create(&models.Purchase{ClientID: c.ID, ProductID: p.ID, DateAchat: date, PrixUnitaire: p.Prix, Quantite: 2})
	// references a client that does not exist
	gdb.Create(&models.Purchase{ClientID: 404, ProductID: p.ID, PrixUnitaire: decimal.NewFromInt(1), Quantite: 1})

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	first := rows[0]
	if first.NomClient == nil || *first.NomClient != "Alaoui" || first.Titre == nil || *first.Titre != "Heat" {
		t.Fatalf("unexpected join result %+v", first)
	}
	if !first.PrixUnitaire.Equal(decimal.NewFromInt(500)) || first.Quantite != 2 || first.DateAchat.String() != "2024-03-05" {
		t.Fatalf("unexpected purchase columns %+v", first.Purchase)
	}
	if rows[1].NomClient != nil {
		t.Fatalf("expected nil client name for dangling reference, got %q", *rows[1].NomClient)
	}

	mine, err := repo.ListByClient(ctx, c.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListByClient = %d rows, err=%v", len(mine), err)
	}
}

func TestSaleQueryRepository(t *testing.T) {
	gdb, xdb := setup(t)
	ctx := context.Background()
	repo := NewSaleQueryRepository(xdb)

	p := models.Product{Titre: "Ali Zaoua"}
	v1 := models.Vendor{Nom: "Bennani", Prenom: "Youssef", CIN: "BK1"}
	v2 := models.Vendor{Nom: "Idrissi", CIN: "AB2"}
	c := models.Client{Nom: "Alaoui", Prenom: "Sara", Email: "s@x.ma"}
	gdb.Create(&p)
	gdb.Create(&v1)
	gdb.Create(&v2)
	gdb.Create(&c)
	gdb.Create(&models.Sale{ProductID: p.ID, VendorID: v1.ID, ClientID: &c.ID, DateVente: models.Today()})
	gdb.Create(&models.Sale{ProductID: p.ID, VendorID: v1.ID})
	gdb.Create(&models.Sale{ProductID: p.ID, VendorID: v2.ID})

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 sales got %d", len(rows))
	}
	if rows[0].NomVendeur == nil || *rows[0].NomVendeur != "Bennani" || rows[0].NomClient == nil {
		t.Fatalf("unexpected first sale %+v", rows[0])
	}
	if rows[1].ClientID != nil || rows[1].NomClient != nil {
		t.Fatalf("expected sale without client, got %+v", rows[1])
	}
	if rows[2].VendorID != v2.ID || rows[2].NomVendeur == nil || *rows[2].NomVendeur != "Idrissi" {
		t.Fatalf("unexpected third sale %+v", rows[2])
	}
}

func TestDriverName(t *testing.T) {
	if driverName("sqlite") != "sqlite3" || driverName("postgres") != "postgres" {
		t.Fatal("unexpected driver mapping")
	}
}
