package models

import "github.com/shopspring/decimal"

// Purchase is one line bought by a client: a product, a unit price and a
// quantity.
type Purchase struct {
	ID           uint            `gorm:"column:id_achat;primaryKey" db:"id_achat" json:"ID_ACHAT"`
	ClientID     uint            `gorm:"column:id_client;not null;index" db:"id_client" json:"ID_CLIENT" validate:"min=1"`
	ProductID    uint            `gorm:"column:id_prod;not null;index" db:"id_prod" json:"ID_PROD" validate:"min=1"`
	VendorID     *uint           `gorm:"column:id_vendeur;index" db:"id_vendeur" json:"ID_VENDEUR,omitempty" validate:"omitempty,min=1"`
	DateAchat    Date            `gorm:"column:date_achat" db:"date_achat" json:"Date_achat"`
	PrixUnitaire decimal.Decimal `gorm:"column:prix_unitaire;type:decimal(10,2);not null" db:"prix_unitaire" json:"Prix_unitaire" validate:"gte=0"`
	Quantite     int             `gorm:"column:quantite;not null" db:"quantite" json:"Quantite" validate:"min=1"`
}

func (Purchase) TableName() string { return "acheter" }

// Total is the line amount, unit price times quantity.
func (p *Purchase) Total() decimal.Decimal {
	return p.PrixUnitaire.Mul(decimal.NewFromInt(int64(p.Quantite)))
}

// PurchaseDetail is a purchase joined with the client name and film title.
type PurchaseDetail struct {
	Purchase
	NomClient    *string `db:"nom_client" json:"Nom_client"`
	PrenomClient *string `db:"prenom_client" json:"Prenom_client"`
	Titre        *string `db:"titre" json:"Titre"`
}
