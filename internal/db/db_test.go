package db

import (
	"strings"
	"testing"

	"github.com/diewo77/go-videoshop/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), GormConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestMigrate_AutoMigrateCreatesTables(t *testing.T) {
	d := newTestDB(t)
	if err := Migrate(d, false, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range coreTables {
		if !d.Migrator().HasTable(table) {
			t.Errorf("missing table %s", table)
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	d := newTestDB(t)
	if err := AutoMigrate(d); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := Seed(d); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}
	var films, vendors, clients int64
	d.Model(&models.Product{}).Count(&films)
	d.Model(&models.Vendor{}).Count(&vendors)
	d.Model(&models.Client{}).Count(&clients)
	if films != 3 || vendors != 2 || clients != 1 {
		t.Fatalf("unexpected seed counts films=%d vendors=%d clients=%d", films, vendors, clients)
	}
	var f models.Product
	if err := d.Where("titre = ?", "Le Grand Voyage").First(&f).Error; err != nil {
		t.Fatal(err)
	}
	if f.Prix.String() != "75.5" {
		t.Errorf("price round trip = %s", f.Prix)
	}
}

func TestMigrationNames_UpAndDownPaired(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := 0, 0
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups++
		case strings.HasSuffix(n, ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("expected paired migrations, got %v", names)
	}
}

func TestMaskDSN(t *testing.T) {
	got := MaskDSN("host=db user=shop password=s3cret dbname=shop")
	if strings.Contains(got, "s3cret") || !strings.Contains(got, "password=***") {
		t.Fatalf("password not masked: %s", got)
	}
}
