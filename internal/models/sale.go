package models

// Sale records that a vendor sold a product, optionally to a known client.
type Sale struct {
	ID        uint  `gorm:"column:id_vente;primaryKey" db:"id_vente" json:"ID_VENTE"`
	ProductID uint  `gorm:"column:id_prod;not null;index" db:"id_prod" json:"ID_PROD" validate:"min=1"`
	VendorID  uint  `gorm:"column:id_vendeur;not null;index" db:"id_vendeur" json:"ID_VENDEUR" validate:"min=1"`
	ClientID  *uint `gorm:"column:id_client;index" db:"id_client" json:"ID_CLIENT" validate:"omitempty,min=1"`
	DateVente Date  `gorm:"column:date_vente" db:"date_vente" json:"Date_vente"`
}

func (Sale) TableName() string { return "vente_produit" }

// SaleDetail is a sale joined with the display names of its references.
type SaleDetail struct {
	Sale
	Titre         *string `db:"titre" json:"Titre"`
	NomVendeur    *string `db:"nom_vendeur" json:"Nom_vendeur"`
	PrenomVendeur *string `db:"prenom_vendeur" json:"Prenom_vendeur"`
	NomClient     *string `db:"nom_client" json:"Nom_client"`
	PrenomClient  *string `db:"prenom_client" json:"Prenom_client"`
}
