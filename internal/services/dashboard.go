// Package services holds the business computations shared by the server and
// the command line client: invoices and dashboard figures.
package services

import (
	"sort"

	"github.com/diewo77/go-videoshop/internal/models"
)

// UnknownGenre buckets products without a genre.
const UnknownGenre = "Inconnu"

const topVendorCount = 5

type DashboardInput struct {
	Clients   []models.Client
	Products  []models.Product
	Vendors   []models.Vendor
	Sales     []models.Sale
	Purchases []models.Purchase
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type VendorSales struct {
	VendorID uint   `json:"vendor_id"`
	Name     string `json:"name"`
	Sales    int    `json:"sales"`
}

type Dashboard struct {
	Clients         int           `json:"clients"`
	Products        int           `json:"products"`
	Vendors         int           `json:"vendors"`
	Sales           int           `json:"sales"`
	Purchases       int           `json:"purchases"`
	UnitsSold       int           `json:"units_sold"`
	ProductsByGenre []GenreCount  `json:"products_by_genre"`
	SalesByMonth    []MonthCount  `json:"sales_by_month"`
	TopVendors      []VendorSales `json:"top_vendors"`
}

// ComputeDashboard aggregates in memory.
func ComputeDashboard(in DashboardInput) Dashboard {
	d := Dashboard{
		Clients:         len(in.Clients),
		Products:        len(in.Products),
		Vendors:         len(in.Vendors),
		Sales:           len(in.Sales),
		Purchases:       len(in.Purchases),
		ProductsByGenre: make([]GenreCount, 0),
		SalesByMonth:    make([]MonthCount, 0),
		TopVendors:      make([]VendorSales, 0),
	}
	for _, p := range in.Purchases {
		d.UnitsSold += p.Quantite
	}

	genres := map[string]int{}
	for _, p := range in.Products {
		g := p.Genre
		if g == "" {
			g = UnknownGenre
		}
		if _, ok := genres[g]; !ok {
			d.ProductsByGenre = append(d.ProductsByGenre, GenreCount{Genre: g})
		}
		genres[g]++
	}
	for i := range d.ProductsByGenre {
		d.ProductsByGenre[i].Count = genres[d.ProductsByGenre[i].Genre]
	}

	months := map[string]int{}
	perVendor := map[uint]int{}
	for _, s := range in.Sales {
		if date := s.DateVente.String(); len(date) >= 7 {
			months[date[:7]]++
		}
		perVendor[s.VendorID]++
	}
	for m, n := range months {
		d.SalesByMonth = append(d.SalesByMonth, MonthCount{Month: m, Count: n})
	}
	sort.Slice(d.SalesByMonth, func(i, j int) bool { return d.SalesByMonth[i].Month < d.SalesByMonth[j].Month })

	names := make(map[uint]string, len(in.Vendors))
	for _, v := range in.Vendors {
		names[v.ID] = v.FullName()
	}
	for id, n := range perVendor {
		d.TopVendors = append(d.TopVendors, VendorSales{VendorID: id, Name: names[id], Sales: n})
	}
	sort.Slice(d.TopVendors, func(i, j int) bool {
		a, b := d.TopVendors[i], d.TopVendors[j]
		if a.Sales != b.Sales {
			return a.Sales > b.Sales
		}
		return a.VendorID < b.VendorID
	})
	if len(d.TopVendors) > topVendorCount {
		d.TopVendors = d.TopVendors[:topVendorCount]
	}
	return d
}
