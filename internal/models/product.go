package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a film sold by the shop.
type Product struct {
	ID          uint            `gorm:"column:id_prod;primaryKey" db:"id_prod" json:"ID_PROD"`
	Titre       string          `gorm:"column:titre;size:255;not null" db:"titre" json:"Titre" validate:"required"`
	Realisateur string          `gorm:"column:realisateur;size:255" db:"realisateur" json:"Realisateur"`
	DateSortie  Date            `gorm:"column:date_sortie" db:"date_sortie" json:"Date_sortie"`
	Duree       int             `gorm:"column:duree" db:"duree" json:"Duree" validate:"gte=0"`
	PaysOrigine string          `gorm:"column:pays_origine;size:100" db:"pays_origine" json:"Pays_origine"`
	Acteurs     string          `gorm:"column:acteurs;type:text" db:"acteurs" json:"Acteurs"`
	Prix        decimal.Decimal `gorm:"column:prix;type:decimal(10,2);not null;default:0" db:"prix" json:"Prix" validate:"gte=0"`
	Langue      string          `gorm:"column:langue;size:50" db:"langue" json:"Langue"`
	Genre       string          `gorm:"column:genre;size:100" db:"genre" json:"Genre"`
	Photo       string          `gorm:"column:photo;size:255" db:"photo" json:"Photo"`

	// PhotoURL is derived from Photo when the product leaves the API.
	PhotoURL string `gorm:"-" db:"-" json:"Photo_url,omitempty"`
}

func (Product) TableName() string { return "produit" }

// WithPhotoURL fills PhotoURL from the uploads prefix, e.g. "/uploads".
func (p *Product) WithPhotoURL(prefix string) {
	if p.Photo == "" {
		p.PhotoURL = ""
		return
	}
	p.PhotoURL = strings.TrimRight(prefix, "/") + "/" + p.Photo
}
